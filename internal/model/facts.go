package model

// FinancialFacts is the normalized input to an assessment.
// Profit is usually Revenue - Expenses but manual entry may supply any value.
type FinancialFacts struct {
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// NewFinancialFacts builds facts with profit derived from revenue and expenses.
func NewFinancialFacts(revenue, expenses float64) FinancialFacts {
	return FinancialFacts{
		Revenue:  revenue,
		Expenses: expenses,
		Profit:   revenue - expenses,
	}
}
