package recommend

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/llm"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// maxModelRecommendations caps how many model suggestions are kept.
const maxModelRecommendations = 3

var promptTemplate = template.Must(
	template.New("recommendation_prompt.tmpl").
		Funcs(template.FuncMap{
			"formatAmount": formatAmount,
			"join":         joinAmounts,
		}).
		ParseFS(templateFS, "templates/recommendation_prompt.tmpl"),
)

// ModelSource asks a language model for recommendations.
type ModelSource struct {
	client llm.Client
}

// NewModelSource creates a model-backed source.
func NewModelSource(client llm.Client) *ModelSource {
	return &ModelSource{client: client}
}

// Recommend returns at most three non-empty suggestions, or an error when the
// reply cannot be used as a whole.
func (s *ModelSource) Recommend(ctx context.Context, in Input) ([]string, error) {
	prompt, err := BuildPrompt(in)
	if err != nil {
		return nil, err
	}

	content, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}

	recs, err := llm.ParseStringList(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUnusableResponse, err)
	}

	if len(recs) > maxModelRecommendations {
		recs = recs[:maxModelRecommendations]
	}
	return recs, nil
}

// BuildPrompt renders the recommendation prompt for in.
func BuildPrompt(in Input) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, in); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func joinAmounts(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatAmount(v)
	}
	return strings.Join(parts, ", ")
}
