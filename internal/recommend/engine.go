package recommend

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/ledgercheck/internal/assess"
	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/llm"
	"github.com/Veraticus/ledgercheck/internal/model"
)

const (
	// DefaultTimeout bounds a single model call.
	DefaultTimeout = 15 * time.Second

	minCredentialLength = 10
)

// Engine picks the model source when one is configured and falls back to
// rules on any failure. It implements assess.Recommender.
type Engine struct {
	model   RecommendationSource
	rules   *RuleSource
	logger  *slog.Logger
	timeout time.Duration
}

var _ assess.Recommender = (*Engine)(nil)

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithModel sets the model-backed source. A nil source disables it.
func WithModel(source RecommendationSource) EngineOption {
	return func(e *Engine) {
		e.model = source
	}
}

// WithTimeout bounds the model call.
func WithTimeout(timeout time.Duration) EngineOption {
	return func(e *Engine) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// WithLogger sets the logger for discarded model failures.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine that always has rules to fall back to.
func NewEngine(rules *RuleSource, opts ...EngineOption) *Engine {
	if rules == nil {
		rules = NewRuleSource(nil)
	}
	e := &Engine{
		rules:   rules,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = common.LoggerOrDefault(e.logger)
	return e
}

// HasCredential reports whether apiKey looks like a usable credential.
func HasCredential(apiKey string) bool {
	return len(strings.TrimSpace(apiKey)) > minCredentialLength
}

// NewEngineFromConfig wires a model source only when cfg carries a credential.
// A client that cannot be built is logged and the engine runs on rules alone.
func NewEngineFromConfig(ctx context.Context, cfg llm.Config, policy assess.ExpensePolicy, logger *slog.Logger) *Engine {
	logger = common.LoggerOrDefault(logger)
	opts := []EngineOption{WithLogger(logger), WithTimeout(cfg.Timeout)}

	if HasCredential(cfg.APIKey) {
		client, err := llm.NewClient(ctx, cfg)
		if err != nil {
			logger.Warn("model recommendations disabled", "provider", cfg.Provider, "error", err)
		} else {
			opts = append(opts, WithModel(NewModelSource(client)))
		}
	}

	return NewEngine(NewRuleSource(policy), opts...)
}

// Recommend returns model suggestions when available, otherwise the rule codes.
func (e *Engine) Recommend(ctx context.Context, facts model.FinancialFacts, margin float64, history []float64) []string {
	in := Input{Facts: facts, Margin: margin, History: history}

	if e.model != nil {
		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		recs, err := e.model.Recommend(callCtx, in)
		cancel()

		if err == nil && len(recs) > 0 {
			return recs
		}
		if err != nil {
			e.logger.Warn("model recommendations unavailable, using rules", "error", err)
		}
	}

	return e.rules.Rules(in)
}
