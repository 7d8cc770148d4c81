package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockLLM struct {
	Response string
	Err      error
	Prompts  []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func TestLLMClassify_ParsesResponse(t *testing.T) {
	mock := &MockLLM{Response: "Sure!\n```json\n{\"categories\": [\"Security\", \"Cooking\", \"Security\", \"DevOps\"]}\n```"}
	c := NewLLMClassifier(mock, 4, nil)

	got := c.Classify(context.Background(), []string{"a vault for secrets"})

	assert.Equal(t, []string{"Security", "DevOps"}, got, "unknown and repeated names are dropped")
	assert.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "- a vault for secrets")
	assert.Contains(t, mock.Prompts[0], "Game Development")
}

func TestLLMClassify_RespectsTop(t *testing.T) {
	mock := &MockLLM{Response: `{"categories": ["Security", "DevOps", "Web Development"]}`}
	got := NewLLMClassifier(mock, 2, nil).Classify(context.Background(), []string{"x"})
	assert.Equal(t, []string{"Security", "DevOps"}, got)
}

func TestLLMClassify_FallsBackOnError(t *testing.T) {
	mock := &MockLLM{Err: errors.New("rate limited")}
	got := NewLLMClassifier(mock, 4, nil).Classify(context.Background(), []string{"docker compose files"})
	assert.Equal(t, []string{"DevOps"}, got)
}

func TestLLMClassify_FallsBackOnGarbage(t *testing.T) {
	mock := &MockLLM{Response: "I think this user likes html"}
	got := NewLLMClassifier(mock, 4, nil).Classify(context.Background(), []string{"html email templates"})
	assert.Equal(t, []string{"Web Development"}, got)
}

func TestLLMClassify_NoDescriptionsSkipsModel(t *testing.T) {
	mock := &MockLLM{Response: `{"categories": ["Security"]}`}
	got := NewLLMClassifier(mock, 4, nil).Classify(context.Background(), nil)
	assert.Empty(t, got)
	assert.Empty(t, mock.Prompts)
}
