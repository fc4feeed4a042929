package assess

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/ledgercheck/internal/model"
)

// GST rates for an intra-state supply.
const (
	GSTRate  = 0.18
	CGSTRate = 0.09
	SGSTRate = 0.09

	// complianceThreshold is the share of revenue under which net payable tax is considered healthy.
	complianceThreshold = 0.10

	gstr1DueDay  = 11
	gstr3BDueDay = 20

	taxInsight = "Tip: Increase Vendor Compliance to claim 100% ITC on COGS."
)

// SimulateTax estimates GST liability under the default expense policy.
func SimulateTax(revenue, expenses float64, today time.Time) model.TaxSimulation {
	return DefaultExpensePolicy.SimulateTax(revenue, expenses, today)
}

// SimulateTax estimates output tax, input tax credit and net payable GST.
// Only ITC-eligible categories contribute to the credit base.
func (p ExpensePolicy) SimulateTax(revenue, expenses float64, today time.Time) model.TaxSimulation {
	outputCGST := revenue * CGSTRate
	outputSGST := revenue * SGSTRate

	eligibleBase := p.ITCEligibleBase(expenses)
	itcCGST := eligibleBase * CGSTRate
	itcSGST := eligibleBase * SGSTRate

	netCGST := math.Max(0, outputCGST-itcCGST)
	netSGST := math.Max(0, outputSGST-itcSGST)
	netTotal := netCGST + netSGST

	status := model.TaxStatusReviewNeeded
	if netTotal < revenue*complianceThreshold {
		status = model.TaxStatusGood
	}

	return model.TaxSimulation{
		OutputTax: model.TaxHeads{
			Total: round2(revenue * GSTRate),
			CGST:  round2(outputCGST),
			SGST:  round2(outputSGST),
		},
		InputTaxCredit: model.TaxHeads{
			Total: round2(eligibleBase * GSTRate),
			CGST:  round2(itcCGST),
			SGST:  round2(itcSGST),
		},
		NetPayable: model.TaxHeads{
			Total: round2(netTotal),
			CGST:  round2(netCGST),
			SGST:  round2(netSGST),
		},
		Deadlines: ComplianceDeadlines(today),
		Status:    status,
		Insight:   taxInsight,
	}
}

// ComplianceDeadlines returns the next GSTR-1 and GSTR-3B due dates.
// After the 20th both returns roll to the following calendar month.
func ComplianceDeadlines(today time.Time) model.FilingDeadlines {
	anchor := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	if today.Day() > gstr3BDueDay {
		next := anchor.AddDate(0, 0, 32)
		anchor = time.Date(next.Year(), next.Month(), 1, 0, 0, 0, 0, today.Location())
	}

	return model.FilingDeadlines{
		GSTR1:  dueDate(anchor, gstr1DueDay),
		GSTR3B: dueDate(anchor, gstr3BDueDay),
	}
}

func dueDate(month time.Time, day int) string {
	return time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, month.Location()).Format(time.DateOnly)
}

func round2(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
