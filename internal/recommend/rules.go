package recommend

import (
	"context"

	"github.com/Veraticus/ledgercheck/internal/assess"
)

// Recommendation codes emitted by RuleSource.
const (
	CodeOptimizeCOGSUrgent   = "OPTIMIZE_COGS_URGENT"
	CodeRenegotiateContracts = "RENEGOTIATE_CONTRACTS"
	CodeIncreaseMarketingROI = "INCREASE_MARKETING_ROI"
	CodeIncreaseMarketing    = "INCREASE_MARKETING"
	CodeCashFlowBuffer       = "CASH_FLOW_BUFFER"
)

const urgentMarginBelow = 20.0

// RuleSource applies three fixed checks and always yields three codes.
type RuleSource struct {
	policy assess.ExpensePolicy
}

// NewRuleSource creates a rule source that reads marketing spend from policy.
// A nil policy means assess.DefaultExpensePolicy.
func NewRuleSource(policy assess.ExpensePolicy) *RuleSource {
	if len(policy) == 0 {
		policy = assess.DefaultExpensePolicy
	}
	return &RuleSource{policy: policy}
}

// Recommend never returns an error.
func (s *RuleSource) Recommend(_ context.Context, in Input) ([]string, error) {
	return s.Rules(in), nil
}

// Rules returns the codes in their fixed order: margin, marketing, cash flow.
func (s *RuleSource) Rules(in Input) []string {
	recs := make([]string, 0, 3)

	if in.Margin < urgentMarginBelow {
		recs = append(recs, CodeOptimizeCOGSUrgent)
	} else {
		recs = append(recs, CodeRenegotiateContracts)
	}

	// Both sides use the marketing weight, so this only flips when
	// expenses reach revenue.
	weight := s.policy.Weight(assess.CategoryMarketing)
	if in.Facts.Expenses*weight < in.Facts.Revenue*weight {
		recs = append(recs, CodeIncreaseMarketingROI)
	} else {
		recs = append(recs, CodeIncreaseMarketing)
	}

	return append(recs, CodeCashFlowBuffer)
}
