package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/ledgercheck/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRecord = errors.New("invalid record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecord validates a record before it is written.
func validateRecord(record *model.Record) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if strings.TrimSpace(record.RequesterID) == "" {
		return fmt.Errorf("%w: requester ID cannot be empty", ErrInvalidRecord)
	}
	if strings.TrimSpace(record.Filename) == "" {
		return fmt.Errorf("%w: filename cannot be empty", ErrInvalidRecord)
	}
	if record.AnalysisData == "" {
		return fmt.Errorf("%w: analysis data cannot be empty", ErrInvalidRecord)
	}
	for name, v := range map[string]float64{
		"revenue":  record.Revenue,
		"expenses": record.Expenses,
		"profit":   record.Profit,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidRecord, name)
		}
	}
	return nil
}
