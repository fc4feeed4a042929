// Package cli renders assessments for the terminal using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Healthy figures are green, figures needing attention amber and
// losses or high risk red.
var (
	AccentColor  = lipgloss.Color("#2E8B57")
	HealthyColor = lipgloss.Color("#4ECDC4")
	CautionColor = lipgloss.Color("#FFE66D")
	AlertColor   = lipgloss.Color("#FF6B6B")
	NoticeColor  = lipgloss.Color("#95E1D3")
	MutedColor   = lipgloss.Color("#666666")
	RuleColor    = lipgloss.Color("#333")
)

var (
	healthyStyle  = lipgloss.NewStyle().Foreground(HealthyColor)
	cautionStyle  = lipgloss.NewStyle().Foreground(CautionColor)
	alertStyle    = lipgloss.NewStyle().Foreground(AlertColor)
	noticeStyle   = lipgloss.NewStyle().Foreground(NoticeColor)
	mutedStyle    = lipgloss.NewStyle().Foreground(MutedColor)
	emphasisStyle = lipgloss.NewStyle().Bold(true)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(RuleColor)

	labelStyle = lipgloss.NewStyle().PaddingRight(2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(RuleColor).
			Padding(1, 2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	LedgerIcon  = "📒"
	ChartIcon   = "📊"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return healthyStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return alertStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return cautionStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return noticeStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a heading with the ledger icon.
func FormatTitle(title string) string {
	return headingStyle.Render(LedgerIcon + " " + title)
}

// RenderBox renders content in a bordered panel under a heading.
func RenderBox(title, content string) string {
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, headingStyle.Render(title), "", content))
}
