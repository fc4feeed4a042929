// Package llm provides language model clients used to draft recommendations.
// It supports OpenAI and Anthropic over their HTTP APIs and Gemini through the
// GenAI SDK, plus lenient parsing of list-shaped replies.
package llm
