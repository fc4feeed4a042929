// Package ofx reads bank and credit card statements into financial facts.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/ledgercheck/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags at end of line that lost their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Statement is the aggregate of every transaction in an OFX file.
type Statement struct {
	// MonthlyRevenue holds credits per calendar month, oldest first.
	MonthlyRevenue []float64
	Facts          model.FinancialFacts
	Transactions   int
	Accounts       int
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFacts sums a statement: credits are revenue, debits (as positive
// amounts) are expenses, and profit is their difference.
func (p *Parser) ParseFacts(ctx context.Context, reader io.Reader) (*Statement, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var lists []*ofxgo.TransactionList
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			lists = append(lists, stmt.BankTranList)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			lists = append(lists, stmt.BankTranList)
		}
	}

	var (
		revenue, expenses float64
		count             int
		monthly           = make(map[time.Time]float64)
	)
	for _, list := range lists {
		if list == nil {
			continue
		}
		for _, txn := range list.Transactions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			amount, _ := txn.TrnAmt.Float64()
			count++
			if amount >= 0 {
				revenue += amount
				if !txn.DtPosted.IsZero() {
					monthly[monthOf(txn.DtPosted.Time)] += amount
				}
			} else {
				expenses -= amount
			}
		}
	}

	stmt := &Statement{
		Facts:          model.NewFinancialFacts(revenue, expenses),
		MonthlyRevenue: orderedMonths(monthly),
		Transactions:   count,
		Accounts:       len(lists),
	}

	slog.Info("Parsed OFX file",
		"transactions", count,
		"accounts", len(lists),
		"revenue", revenue,
		"expenses", expenses)

	return stmt, nil
}

func monthOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// orderedMonths returns monthly totals from the first to the last month seen,
// oldest first. Months in between without credits count as 0.
func orderedMonths(monthly map[time.Time]float64) []float64 {
	if len(monthly) == 0 {
		return nil
	}

	var first, last time.Time
	seen := false
	for m := range monthly {
		if !seen || m.Before(first) {
			first = m
		}
		if !seen || m.After(last) {
			last = m
		}
		seen = true
	}

	var series []float64
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		series = append(series, monthly[m])
	}
	return series
}
