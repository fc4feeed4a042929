// Package ledger runs assessments end to end: extract or accept figures,
// assess, encrypt and store, and read stored assessments back.
package ledger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"github.com/Veraticus/ledgercheck/internal/assess"
	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/extract"
	"github.com/Veraticus/ledgercheck/internal/model"
	"github.com/Veraticus/ledgercheck/internal/ofx"
	"github.com/Veraticus/ledgercheck/internal/service"
)

// HistoryType labels every history entry.
const HistoryType = "PDF/CSV"

// Service glues the assessment engine to its collaborators.
type Service struct {
	calc       *assess.Calculator
	extractor  *extract.Extractor
	statements *ofx.Parser
	store      service.RecordStore
	cipher     service.Cipher
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the record timestamp clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a service. store and cipher may be nil for callers that
// only assess and never persist.
func NewService(calc *assess.Calculator, extractor *extract.Extractor, store service.RecordStore, cipher service.Cipher, opts ...Option) *Service {
	s := &Service{
		calc:       calc,
		extractor:  extractor,
		statements: ofx.NewParser(),
		store:      store,
		cipher:     cipher,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = common.LoggerOrDefault(s.logger)
	return s
}

// Evaluate assesses facts as given, without storing anything. Profit is not
// reconciled with revenue and expenses. A nil history is synthesized.
func (s *Service) Evaluate(ctx context.Context, filename, method string, facts model.FinancialFacts, history []float64) *model.ExtractionResult {
	return &model.ExtractionResult{
		Status:           model.StatusSuccess,
		Method:           method,
		Filename:         filename,
		FinancialSummary: s.calc.Assess(ctx, facts, history),
	}
}

// Extract extracts and assesses a document without storing it.
func (s *Service) Extract(ctx context.Context, filename string, r io.Reader) (*model.ExtractionResult, error) {
	return s.extractor.Extract(ctx, filename, r)
}

// EvaluateStatement assesses an OFX statement. Monthly credits become the
// revenue history; a statement without credits gets a synthesized one.
func (s *Service) EvaluateStatement(ctx context.Context, filename string, r io.Reader) (*model.ExtractionResult, error) {
	stmt, err := s.statements.ParseFacts(ctx, r)
	if err != nil {
		return nil, common.NewDocumentParseError(filename, err)
	}

	result := s.Evaluate(ctx, filename, model.MethodStatementImport, stmt.Facts, stmt.MonthlyRevenue)
	result.RowsProcessed = stmt.Transactions
	return result, nil
}

// AnalyzeUpload extracts and assesses a document and stores the result.
// Parse failures are returned before anything is stored.
func (s *Service) AnalyzeUpload(ctx context.Context, requesterID, filename string, r io.Reader) (*model.ExtractionResult, error) {
	result, err := s.Extract(ctx, filename, r)
	if err != nil {
		return nil, err
	}

	if err := s.Record(ctx, requesterID, filename, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AnalyzeManual assesses manually entered figures and stores the result.
func (s *Service) AnalyzeManual(ctx context.Context, requesterID string, facts model.FinancialFacts) (*model.ExtractionResult, error) {
	result := s.Evaluate(ctx, "", model.MethodManualEntry, facts, nil)

	if err := s.Record(ctx, requesterID, model.ManualEntryFilename, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Record encrypts result and stores it under requesterID.
func (s *Service) Record(ctx context.Context, requesterID, filename string, result *model.ExtractionResult) error {
	if err := s.requireStore(); err != nil {
		return err
	}

	plaintext, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize analysis: %w", err)
	}

	token, err := s.cipher.Encrypt(plaintext)
	if err != nil {
		return fmt.Errorf("failed to encrypt analysis: %w", err)
	}

	summary := result.FinancialSummary
	record := &model.Record{
		RequesterID:  requesterID,
		Filename:     filename,
		CreatedAt:    s.now(),
		Revenue:      summary.Revenue.Total,
		Expenses:     summary.Expenses.Total,
		Profit:       summary.NetProfit,
		AnalysisData: token,
	}
	if err := s.store.SaveRecord(ctx, record); err != nil {
		return err
	}

	s.logger.Info("stored assessment",
		"record_id", record.ID,
		"requester", requesterID,
		"filename", filename,
		"status", result.Status)
	return nil
}

func (s *Service) requireStore() error {
	if s.store == nil || s.cipher == nil {
		return fmt.Errorf("%w: record store is not configured", common.ErrMissingConfig)
	}
	return nil
}
