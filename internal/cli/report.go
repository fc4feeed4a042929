package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/ledgercheck/internal/model"
)

// recommendationText gives plain-language wording for rule codes.
var recommendationText = map[string]string{
	"OPTIMIZE_COGS_URGENT":   "Margins are thin: review supplier prices and cost of goods now.",
	"RENEGOTIATE_CONTRACTS":  "Margins are healthy: renegotiate supplier contracts to keep them that way.",
	"INCREASE_MARKETING_ROI": "Measure what your marketing brings in and move spend to what works.",
	"INCREASE_MARKETING":     "Spending outpaces revenue: invest in marketing that grows sales.",
	"CASH_FLOW_BUFFER":       "Keep a cash reserve covering at least three months of expenses.",
}

// DescribeRecommendation returns readable text for a rule code, or the
// recommendation unchanged.
func DescribeRecommendation(rec string) string {
	if text, ok := recommendationText[rec]; ok {
		return text
	}
	return rec
}

// FormatAmount renders an amount with thousands separators and 2 decimals.
func FormatAmount(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := fmt.Sprintf("%.2f", amount)
	intPart, frac := whole[:len(whole)-3], whole[len(whole)-3:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}

func riskStyle(level model.RiskLevel) lipgloss.Style {
	switch level {
	case model.RiskLow:
		return healthyStyle
	case model.RiskMedium:
		return cautionStyle
	default:
		return alertStyle
	}
}

// RenderAssessment renders an extraction result for the terminal.
func RenderAssessment(result *model.ExtractionResult) string {
	p := result.FinancialSummary
	var b strings.Builder

	if result.Filename != "" {
		b.WriteString(mutedStyle.Render("Source: "+result.Filename) + "\n")
	}
	if result.Status == model.StatusPartialSuccess {
		b.WriteString(FormatWarning(result.Message) + "\n")
	}
	if result.RowsProcessed > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Rows processed: %d", result.RowsProcessed)) + "\n")
	}
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Width(22).Render(label) + value + "\n")
	}

	row("Revenue", FormatAmount(p.Revenue.Total))
	row("Expenses", FormatAmount(p.Expenses.Total))
	profit := FormatAmount(p.NetProfit)
	if p.NetProfit < 0 {
		profit = alertStyle.Render(profit)
	}
	row("Net profit", profit)
	row("Margin", fmt.Sprintf("%.1f%% (%s, industry %.1f%%)", p.Benchmark.YourMargin, p.Benchmark.Status, p.Benchmark.IndustryMargin))
	row("Health score", emphasisStyle.Render(fmt.Sprintf("%d/100", p.HealthScore)))
	row("Risk level", riskStyle(p.RiskLevel).Render(string(p.RiskLevel)))
	row("Revenue forecast", FormatAmount(p.Revenue.Forecast))

	b.WriteString("\n" + sectionStyle.Render("Expense breakdown") + "\n")
	categories := make([]string, 0, len(p.Expenses.Breakdown))
	for name := range p.Expenses.Breakdown {
		categories = append(categories, name)
	}
	sort.Slice(categories, func(i, j int) bool {
		return p.Expenses.Breakdown[categories[i]] > p.Expenses.Breakdown[categories[j]]
	})
	for _, name := range categories {
		row(name, FormatAmount(p.Expenses.Breakdown[name]))
	}

	tax := p.TaxCompliance
	b.WriteString("\n" + sectionStyle.Render("GST estimate") + "\n")
	row("Output tax", FormatAmount(tax.OutputTax.Total))
	row("Input tax credit", FormatAmount(tax.InputTaxCredit.Total))
	row("Net payable", fmt.Sprintf("%s (CGST %s, SGST %s)",
		FormatAmount(tax.NetPayable.Total), FormatAmount(tax.NetPayable.CGST), FormatAmount(tax.NetPayable.SGST)))
	status := healthyStyle.Render(tax.Status)
	if tax.Status != model.TaxStatusGood {
		status = cautionStyle.Render(tax.Status)
	}
	row("Status", status)
	row("GSTR-1 due", tax.Deadlines.GSTR1)
	row("GSTR-3B due", tax.Deadlines.GSTR3B)
	if tax.Insight != "" {
		b.WriteString(mutedStyle.Render(tax.Insight) + "\n")
	}

	b.WriteString("\n" + sectionStyle.Render("Recommendations") + "\n")
	for i, rec := range p.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, DescribeRecommendation(rec))
	}

	return RenderBox(ChartIcon+" Financial health", strings.TrimRight(b.String(), "\n"))
}

// RenderHistory renders history entries as a table, newest first.
func RenderHistory(entries []model.HistoryEntry) string {
	if len(entries) == 0 {
		return FormatInfo("No assessments recorded yet.")
	}

	widths := []int{12, 28, 16, 16, 16}
	cell := func(i int, s string) string {
		return labelStyle.Width(widths[i]).Render(s)
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render(
		cell(0, "Date")+cell(1, "File")+cell(2, "Revenue")+cell(3, "Profit")+cell(4, "Tax status"),
	) + "\n")

	for _, e := range entries {
		taxStatus := "-"
		if e.TaxCompliance != nil && e.TaxCompliance.Status != "" {
			taxStatus = e.TaxCompliance.Status
		}
		b.WriteString(cell(0, e.Date) + cell(1, truncate(e.Filename, widths[1]-3)) +
			cell(2, FormatAmount(e.Revenue)) + cell(3, FormatAmount(e.Profit)) + cell(4, taxStatus) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
