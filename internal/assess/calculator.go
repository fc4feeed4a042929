// Package assess turns financial facts into a financial-health assessment.
package assess

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/model"
)

const (
	// IndustryAverageMargin is the benchmark net margin, in percent.
	IndustryAverageMargin = 15.0
	// RevenueGrowth is a placeholder metric reported as-is.
	RevenueGrowth = 15.2

	scoreSlope      = 2.0
	scoreOffset     = 50.0
	maxScore        = 100
	lowRiskAbove    = 70
	mediumRiskAbove = 40
)

// PlaceholderFacts are assessed when a document format cannot be read.
var PlaceholderFacts = model.FinancialFacts{
	Revenue:  1250000,
	Expenses: 850000,
	Profit:   400000,
}

// Recommender produces recommendation strings for an assessment.
// Implementations must always return at least one entry.
type Recommender interface {
	Recommend(ctx context.Context, facts model.FinancialFacts, margin float64, history []float64) []string
}

// Calculator assembles assessments. It holds no per-request state and is safe
// for concurrent use.
type Calculator struct {
	recommender Recommender
	logger      *slog.Logger
	now         func() time.Time
	policy      ExpensePolicy
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithClock overrides the clock used for the compliance calendar.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		c.now = now
	}
}

// WithPolicy replaces the default expense allocation policy.
func WithPolicy(policy ExpensePolicy) Option {
	return func(c *Calculator) {
		c.policy = policy
	}
}

// WithLogger sets the logger used for recovered faults.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// NewCalculator creates a calculator that delegates recommendations to recommender.
func NewCalculator(recommender Recommender, opts ...Option) *Calculator {
	c := &Calculator{
		recommender: recommender,
		policy:      DefaultExpensePolicy,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = common.LoggerOrDefault(c.logger)
	return c
}

// Policy returns the expense policy in use.
func (c *Calculator) Policy() ExpensePolicy {
	return c.policy
}

// Assess builds the full assessment for facts. A nil or empty history is
// synthesized from revenue. Assess never fails for finite facts.
func (c *Calculator) Assess(ctx context.Context, facts model.FinancialFacts, history []float64) model.AssessmentPayload {
	margin := Margin(facts.Profit, facts.Revenue)
	score := HealthScore(margin)

	if len(history) == 0 {
		history = SynthesizeHistory(facts.Revenue)
	}

	forecast, err := forecastNext(history)
	if err != nil {
		c.logger.Warn("forecast fell back to flat growth", "error", err)
	}

	benchmarkStatus := model.BenchmarkBelow
	if margin > IndustryAverageMargin {
		benchmarkStatus = model.BenchmarkAbove
	}

	return model.AssessmentPayload{
		Revenue: model.RevenueDetail{
			Total:    facts.Revenue,
			Growth:   RevenueGrowth,
			History:  history,
			Forecast: forecast,
		},
		Expenses: model.ExpenseDetail{
			Total:     facts.Expenses,
			Breakdown: c.policy.Allocate(facts.Expenses),
		},
		NetProfit:   facts.Profit,
		HealthScore: score,
		RiskLevel:   RiskLevelFor(score),
		Benchmark: model.Benchmark{
			IndustryMargin: IndustryAverageMargin,
			YourMargin:     margin,
			Status:         benchmarkStatus,
		},
		TaxCompliance:   c.policy.SimulateTax(facts.Revenue, facts.Expenses, c.now()),
		Recommendations: c.recommender.Recommend(ctx, facts, margin, history),
	}
}

// Placeholder assesses PlaceholderFacts.
func (c *Calculator) Placeholder(ctx context.Context) model.AssessmentPayload {
	return c.Assess(ctx, PlaceholderFacts, nil)
}

// Margin is profit as a percentage of revenue; 0 when revenue is not positive.
func Margin(profit, revenue float64) float64 {
	if revenue <= 0 {
		return 0
	}
	margin := profit / revenue * 100
	if !isFinite(margin) {
		return 0
	}
	return margin
}

// HealthScore maps a margin linearly onto 0..100.
func HealthScore(margin float64) int {
	score := math.Round(margin*scoreSlope + scoreOffset)
	switch {
	case math.IsNaN(score), score < 0:
		return 0
	case score > maxScore:
		return maxScore
	default:
		return int(score)
	}
}

// RiskLevelFor bands a health score. Band boundaries belong to the riskier band.
func RiskLevelFor(score int) model.RiskLevel {
	switch {
	case score > lowRiskAbove:
		return model.RiskLow
	case score > mediumRiskAbove:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}
