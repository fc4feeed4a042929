// Package recommend produces short recommendations for an assessment, asking
// a language model first and falling back to fixed rules.
package recommend

import (
	"context"

	"github.com/Veraticus/ledgercheck/internal/model"
)

// Input is everything a source may look at.
type Input struct {
	History []float64
	Facts   model.FinancialFacts
	Margin  float64
}

// RecommendationSource produces recommendations for an input.
type RecommendationSource interface {
	Recommend(ctx context.Context, in Input) ([]string, error)
}
