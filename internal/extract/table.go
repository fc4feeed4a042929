package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/Veraticus/ledgercheck/internal/common"
)

// Column names recognized after normalization.
const (
	colType     = "type"
	colAmount   = "amount"
	colRevenue  = "revenue"
	colExpenses = "expenses"
)

// Layouts reported in debug logs.
const (
	layoutLong = "long"
	layoutWide = "wide"
	layoutNone = "none"
)

var (
	revenueTypes = map[string]bool{"income": true, "revenue": true, "sales": true}
	expenseTypes = map[string]bool{"expense": true, "cost": true, "expenditure": true}

	errRaggedRow = errors.New("row has more fields than the header")
)

// table is a header plus data rows. Rows shorter than the header read as
// empty trailing cells.
type table struct {
	index   map[string]int
	columns []string
	rows    [][]string
}

type totals struct {
	layout   string
	revenue  float64
	expenses float64
	skipped  int
}

func newTable(records [][]string, strictWidth bool) (*table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, common.ErrEmptyDocument
	}

	header := records[0]
	t := &table{
		columns: make([]string, len(header)),
		index:   make(map[string]int, len(header)),
		rows:    records[1:],
	}
	for i, name := range header {
		name = normalizeColumn(name)
		t.columns[i] = name
		if _, seen := t.index[name]; !seen {
			t.index[name] = i
		}
	}

	if strictWidth {
		for i, row := range t.rows {
			if len(row) > len(header) {
				return nil, fmt.Errorf("%w: line %d has %d fields, expected %d", errRaggedRow, i+2, len(row), len(header))
			}
		}
	}

	return t, nil
}

func normalizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.TrimSpace(name))
}

func (t *table) has(column string) bool {
	_, ok := t.index[column]
	return ok
}

func (t *table) cell(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (t *table) totals(logger *slog.Logger) totals {
	switch {
	case t.has(colType) && t.has(colAmount):
		return t.longTotals(logger)
	case t.has(colRevenue) || t.has(colExpenses):
		return t.wideTotals(logger)
	default:
		return totals{layout: layoutNone}
	}
}

// longTotals classifies each row by its type column.
func (t *table) longTotals(logger *slog.Logger) totals {
	sum := totals{layout: layoutLong}
	for _, row := range t.rows {
		amount, ok := coerce(t.cell(row, colAmount))
		if !ok {
			sum.skipped++
			logger.Debug("skipping row with unreadable amount", "amount", t.cell(row, colAmount))
			continue
		}

		kind := strings.ToLower(strings.TrimSpace(t.cell(row, colType)))
		switch {
		case revenueTypes[kind]:
			sum.revenue += amount
		case expenseTypes[kind]:
			sum.expenses += amount
		}
	}
	return sum
}

// wideTotals sums the revenue and expenses columns independently.
func (t *table) wideTotals(logger *slog.Logger) totals {
	sum := totals{layout: layoutWide}
	for _, row := range t.rows {
		for _, column := range []string{colRevenue, colExpenses} {
			if !t.has(column) {
				continue
			}
			value, ok := coerce(t.cell(row, column))
			if !ok {
				sum.skipped++
				logger.Debug("skipping unreadable cell", "column", column, "value", t.cell(row, column))
				continue
			}
			if column == colRevenue {
				sum.revenue += value
			} else {
				sum.expenses += value
			}
		}
	}
	return sum
}

// coerce parses a cell as a finite number.
func coerce(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
