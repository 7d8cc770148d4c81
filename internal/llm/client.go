package llm

import (
	"context"
)

// LLMClient is the single completion call the classifier relies on.
// Implementations ask their backend for a JSON answer where it supports one.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	DefaultMaxTokens = 256

	systemPrompt = "You label software developers. Answer with a single JSON object and nothing else."
)

func maxTokens(n int) int {
	if n <= 0 {
		return DefaultMaxTokens
	}
	return n
}
