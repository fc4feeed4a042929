package model

// RiskLevel is the three-tier banding of a health score.
type RiskLevel string

// Risk levels.
const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Benchmark statuses.
const (
	BenchmarkAbove = "Above Average"
	BenchmarkBelow = "Below Average"
)

// AssessmentPayload is the complete financial-health assessment for one set of facts.
// It is built fresh for every request and serialized by the caller.
type AssessmentPayload struct {
	Revenue         RevenueDetail `json:"revenue"`
	Expenses        ExpenseDetail `json:"expenses"`
	RiskLevel       RiskLevel     `json:"risk_level"`
	Recommendations []string      `json:"recommendations"`
	Benchmark       Benchmark     `json:"benchmark"`
	TaxCompliance   TaxSimulation `json:"tax_compliance"`
	NetProfit       float64       `json:"net_profit"`
	HealthScore     int           `json:"health_score"`
}

// RevenueDetail holds revenue totals, the history series and the next-period forecast.
type RevenueDetail struct {
	History  []float64 `json:"history"`
	Total    float64   `json:"total"`
	Growth   float64   `json:"growth"`
	Forecast float64   `json:"forecast"`
}

// ExpenseDetail holds the expense total and its proportional allocation.
type ExpenseDetail struct {
	Breakdown map[string]float64 `json:"breakdown"`
	Total     float64            `json:"total"`
}

// Benchmark compares the margin against an industry average.
type Benchmark struct {
	Status         string  `json:"status"`
	IndustryMargin float64 `json:"industry_margin"`
	YourMargin     float64 `json:"your_margin"`
}
