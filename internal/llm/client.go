package llm

import (
	"context"
	"time"
)

// Client defines the interface for LLM providers.
type Client interface {
	// Complete sends a single prompt and returns the raw text reply.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for an LLM client.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the provider endpoint; empty means the public API.
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// systemPrompt frames every completion request.
const systemPrompt = "You are a financial advisor for small businesses. You MUST respond with ONLY a valid JSON array of strings. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. Start your response directly with [ and end with ]."

func (cfg Config) withDefaults(model string) Config {
	if cfg.Model == "" {
		cfg.Model = model
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 150
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg
}
