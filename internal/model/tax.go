package model

// Tax compliance statuses.
const (
	TaxStatusGood         = "Good"
	TaxStatusReviewNeeded = "Review Needed"
)

// TaxHeads splits a GST amount into its central and state components.
type TaxHeads struct {
	Total float64 `json:"total"`
	CGST  float64 `json:"cgst"`
	SGST  float64 `json:"sgst"`
}

// FilingDeadlines lists the next GST return due dates (YYYY-MM-DD).
type FilingDeadlines struct {
	GSTR1  string `json:"GSTR-1"`
	GSTR3B string `json:"GSTR-3B"`
}

// TaxSimulation is a GST liability estimate derived from revenue and expenses.
type TaxSimulation struct {
	Deadlines      FilingDeadlines `json:"deadlines"`
	Status         string          `json:"status"`
	Insight        string          `json:"insight"`
	OutputTax      TaxHeads        `json:"output_tax"`
	InputTaxCredit TaxHeads        `json:"input_tax_credit"`
	NetPayable     TaxHeads        `json:"net_payable"`
}
