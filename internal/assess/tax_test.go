package assess

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/ledgercheck/internal/model"
)

func TestSimulateTax(t *testing.T) {
	today := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)

	sim := SimulateTax(1000, 500, today)

	assert.Equal(t, model.TaxHeads{Total: 180, CGST: 90, SGST: 90}, sim.OutputTax)
	assert.Equal(t, model.TaxHeads{Total: 58.5, CGST: 29.25, SGST: 29.25}, sim.InputTaxCredit)
	assert.Equal(t, model.TaxHeads{Total: 121.5, CGST: 60.75, SGST: 60.75}, sim.NetPayable)
	assert.Equal(t, model.TaxStatusReviewNeeded, sim.Status)
	assert.Equal(t, taxInsight, sim.Insight)
}

func TestSimulateTaxGoodStatus(t *testing.T) {
	// net payable = 0.18 * (1000 - 0.65*1000) = 63 < 100
	sim := SimulateTax(1000, 1000, time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC))

	assert.InDelta(t, 63, sim.NetPayable.Total, 1e-9)
	assert.Equal(t, model.TaxStatusGood, sim.Status)
}

func TestSimulateTaxNetPayableNeverNegative(t *testing.T) {
	today := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)

	for _, tc := range []struct{ revenue, expenses float64 }{
		{revenue: 100, expenses: 1000},
		{revenue: 0, expenses: 50},
		{revenue: 0, expenses: 0},
		{revenue: 650, expenses: 1000},
	} {
		sim := SimulateTax(tc.revenue, tc.expenses, today)
		assert.GreaterOrEqual(t, sim.NetPayable.CGST, 0.0)
		assert.GreaterOrEqual(t, sim.NetPayable.SGST, 0.0)
		assert.GreaterOrEqual(t, sim.NetPayable.Total, 0.0)
	}

	sim := SimulateTax(100, 1000, today)
	assert.Zero(t, sim.NetPayable.CGST)
	assert.Zero(t, sim.NetPayable.SGST)
	assert.InDelta(t, 58.5, sim.InputTaxCredit.CGST, 1e-9)
}

func TestComplianceDeadlines(t *testing.T) {
	tests := []struct {
		today      time.Time
		name       string
		wantGSTR1  string
		wantGSTR3B string
	}{
		{
			name:       "early in the month",
			today:      time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
			wantGSTR1:  "2024-03-11",
			wantGSTR3B: "2024-03-20",
		},
		{
			name:       "on the 20th stays in the month",
			today:      time.Date(2024, time.March, 20, 23, 59, 0, 0, time.UTC),
			wantGSTR1:  "2024-03-11",
			wantGSTR3B: "2024-03-20",
		},
		{
			name:       "after the 20th rolls forward",
			today:      time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			wantGSTR1:  "2024-02-11",
			wantGSTR3B: "2024-02-20",
		},
		{
			name:       "december rolls into the next year",
			today:      time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC),
			wantGSTR1:  "2025-01-11",
			wantGSTR3B: "2025-01-20",
		},
		{
			name:       "february in a leap year",
			today:      time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			wantGSTR1:  "2024-03-11",
			wantGSTR3B: "2024-03-20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComplianceDeadlines(tt.today)
			assert.Equal(t, tt.wantGSTR1, got.GSTR1)
			assert.Equal(t, tt.wantGSTR3B, got.GSTR3B)
		})
	}
}
