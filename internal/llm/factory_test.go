package llm

import (
	"context"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/ghrank/internal/config"
)

func TestNewClient_Providers(t *testing.T) {
	ctx := context.Background()

	c, err := NewClient(ctx, config.LLMConfig{Provider: "OpenAI", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	c, err = NewClient(ctx, config.LLMConfig{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	c, err = NewClient(ctx, config.LLMConfig{Provider: "claude", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &ClaudeClient{}, c)
}

func TestNewClient_Unsupported(t *testing.T) {
	_, err := NewClient(context.Background(), config.LLMConfig{Provider: "eliza"})
	assert.ErrorContains(t, err, "unsupported llm provider: eliza")
}

func TestOllamaConfig(t *testing.T) {
	cfg := ollamaConfig(config.LLMConfig{Model: "llama3"})
	assert.Equal(t, "http://localhost:11434/v1", cfg.BaseURL)
	assert.Equal(t, "ollama", cfg.APIKey)

	cfg = ollamaConfig(config.LLMConfig{BaseURL: "http://gpu:11434/", APIKey: "k"})
	assert.Equal(t, "http://gpu:11434/v1", cfg.BaseURL)
	assert.Equal(t, "k", cfg.APIKey)

	cfg = ollamaConfig(config.LLMConfig{BaseURL: "http://gpu:11434/v1"})
	assert.Equal(t, "http://gpu:11434/v1", cfg.BaseURL)
}

func TestOpenAIRequest(t *testing.T) {
	c := NewOpenAIClient(config.LLMConfig{APIKey: "k"})
	req := c.request("classify this")

	assert.Equal(t, openai.GPT4oMini, req.Model)
	assert.Equal(t, DefaultMaxTokens, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, "classify this", req.Messages[1].Content)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)

	c = NewOpenAIClient(config.LLMConfig{APIKey: "k", Model: "gpt-4o", MaxTokens: 64})
	req = c.request("x")
	assert.Equal(t, "gpt-4o", req.Model)
	assert.Equal(t, 64, req.MaxTokens)
}
