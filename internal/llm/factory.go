package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/ghrank/internal/config"
)

const DefaultOllamaBaseURL = "http://localhost:11434"

func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	switch provider := strings.ToLower(cfg.Provider); provider {
	case "openai":
		return NewOpenAIClient(cfg), nil
	case "gemini":
		return NewGeminiClient(ctx, cfg)
	case "claude", "anthropic":
		return NewClaudeClient(cfg), nil
	case "ollama":
		return NewOpenAIClient(ollamaConfig(cfg)), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}

// ollamaConfig points the OpenAI client at ollama's /v1 endpoint.
func ollamaConfig(cfg config.LLMConfig) config.LLMConfig {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOllamaBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/v1") {
		cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + "/v1"
	}
	if cfg.APIKey == "" {
		cfg.APIKey = "ollama" // ignored by ollama, required by the client
	}
	return cfg
}
