package model

import "time"

// ManualEntryFilename labels records created from manually entered figures.
const ManualEntryFilename = "Manual Entry"

// Record is a persisted assessment. AnalysisData is an opaque encrypted token.
type Record struct {
	CreatedAt    time.Time
	ID           string
	RequesterID  string
	Filename     string
	AnalysisData string
	Revenue      float64
	Expenses     float64
	Profit       float64
}

// HistoryEntry is a decoded record as shown in history listings.
type HistoryEntry struct {
	TaxCompliance   *TaxSimulation `json:"tax_compliance"`
	ID              string         `json:"id"`
	Date            string         `json:"date"`
	Filename        string         `json:"filename"`
	Type            string         `json:"type"`
	Recommendations []string       `json:"recommendations"`
	Revenue         float64        `json:"revenue"`
	Profit          float64        `json:"profit"`
}
