package model

// ExtractionStatus reports how completely a document was processed.
type ExtractionStatus string

// Extraction statuses.
const (
	StatusSuccess        ExtractionStatus = "success"
	StatusPartialSuccess ExtractionStatus = "partial_success"
)

// Entry methods recorded on a result.
const (
	MethodDocumentUpload  = "document_upload"
	MethodManualEntry     = "manual_entry"
	MethodStatementImport = "statement_import"
)

// ExtractionResult is the outcome of analyzing one uploaded document or manual entry.
type ExtractionResult struct {
	Status           ExtractionStatus  `json:"status"`
	Method           string            `json:"method,omitempty"`
	Message          string            `json:"message,omitempty"`
	Filename         string            `json:"filename,omitempty"`
	Columns          []string          `json:"columns,omitempty"`
	FinancialSummary AssessmentPayload `json:"financial_summary"`
	RowsProcessed    int               `json:"rows_processed"`
}
