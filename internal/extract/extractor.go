// Package extract reads revenue and expense totals out of uploaded tables.
package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Veraticus/ledgercheck/internal/assess"
	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/model"
)

// UnsupportedFormatMessage accompanies placeholder results.
const UnsupportedFormatMessage = "File type not fully supported yet, returning placeholder analysis"

// Supported extensions.
const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
)

// Extractor turns documents into extraction results. It is safe for
// concurrent use.
type Extractor struct {
	calc   *assess.Calculator
	logger *slog.Logger
}

// New creates an extractor that assesses totals with calc.
func New(calc *assess.Calculator, logger *slog.Logger) *Extractor {
	return &Extractor{
		calc:   calc,
		logger: common.LoggerOrDefault(logger),
	}
}

// Supported reports whether filename has an extension Extract can read.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ExtCSV, ExtXLSX:
		return true
	default:
		return false
	}
}

// Extract reads the document and assesses its totals. Unsupported formats
// yield a partial_success placeholder; structural failures return a
// *common.DocumentParseError.
func (e *Extractor) Extract(ctx context.Context, filename string, r io.Reader) (*model.ExtractionResult, error) {
	var (
		tbl *table
		err error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ExtCSV:
		tbl, err = readCSV(r)
	case ExtXLSX:
		tbl, err = readXLSX(r)
	default:
		e.logger.Warn("returning placeholder analysis",
			"filename", filename,
			"error", fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, filepath.Ext(filename)))
		return &model.ExtractionResult{
			Status:           model.StatusPartialSuccess,
			Method:           model.MethodDocumentUpload,
			Message:          UnsupportedFormatMessage,
			Filename:         filename,
			FinancialSummary: e.calc.Placeholder(ctx),
		}, nil
	}
	if err != nil {
		return nil, common.NewDocumentParseError(filename, err)
	}

	totals := tbl.totals(e.logger)
	facts := model.NewFinancialFacts(totals.revenue, totals.expenses)

	e.logger.Debug("document extracted",
		"filename", filename,
		"layout", totals.layout,
		"rows", len(tbl.rows),
		"skipped", totals.skipped)

	return &model.ExtractionResult{
		Status:           model.StatusSuccess,
		Method:           model.MethodDocumentUpload,
		Filename:         filename,
		Columns:          tbl.columns,
		RowsProcessed:    len(tbl.rows),
		FinancialSummary: e.calc.Assess(ctx, facts, nil),
	}, nil
}
