package ledger

import (
	"bytes"
	"context"

	"github.com/goccy/go-json"

	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/model"
)

// storedSummary is the part of a stored analysis shown in history.
type storedSummary struct {
	FinancialSummary struct {
		TaxCompliance   *model.TaxSimulation `json:"tax_compliance"`
		Recommendations []string             `json:"recommendations"`
	} `json:"financial_summary"`
}

// History lists the requester's assessments, newest first.
func (s *Service) History(ctx context.Context, requesterID string) ([]model.HistoryEntry, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}

	records, err := s.store.ListRecords(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	entries := make([]model.HistoryEntry, 0, len(records))
	for i := range records {
		record := &records[i]

		var summary storedSummary
		// An undecodable analysis leaves the summary empty.
		_ = json.Unmarshal(s.decodeAnalysis(record), &summary)

		recs := summary.FinancialSummary.Recommendations
		if recs == nil {
			recs = []string{}
		}

		entries = append(entries, model.HistoryEntry{
			ID:              record.ID,
			Date:            record.CreatedAt.Format("2006-01-02"),
			Filename:        record.Filename,
			Revenue:         record.Revenue,
			Profit:          record.Profit,
			Type:            HistoryType,
			Recommendations: recs,
			TaxCompliance:   summary.FinancialSummary.TaxCompliance,
		})
	}

	return entries, nil
}

// Latest returns the requester's newest stored analysis as JSON, or
// common.ErrNotFound.
func (s *Service) Latest(ctx context.Context, requesterID string) (json.RawMessage, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}

	record, err := s.store.LatestRecord(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.decodeAnalysis(record), nil
}

// decodeAnalysis recovers a stored analysis. Rows written before encryption
// hold plain JSON. Anything unreadable becomes {}.
func (s *Service) decodeAnalysis(record *model.Record) json.RawMessage {
	plaintext, err := s.cipher.Decrypt(record.AnalysisData)
	if err != nil {
		plaintext = []byte(record.AnalysisData)
	}

	trimmed := bytes.TrimSpace(plaintext)
	if len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}

	s.logger.Warn("stored analysis unreadable",
		"record_id", record.ID,
		"requester", record.RequesterID,
		"error", common.ErrDecryptionFailed)
	return json.RawMessage(`{}`)
}
