package classify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/agenthands/ghrank/internal/core/common"
	"github.com/agenthands/ghrank/internal/core/model"
	"github.com/agenthands/ghrank/internal/llm"
)

const maxPromptDescriptions = 30

// LLMClassifier asks a language model to pick categories, and falls back to
// keyword matching whenever the model cannot give a usable answer.
type LLMClassifier struct {
	LLM      llm.LLMClient
	Fallback Classifier
	Top      int
	Logger   *zap.Logger
}

func NewLLMClassifier(client llm.LLMClient, top int, logger *zap.Logger) *LLMClassifier {
	if top <= 0 {
		top = DefaultTop
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMClassifier{
		LLM:      client,
		Fallback: NewKeywordClassifier(top),
		Top:      top,
		Logger:   logger,
	}
}

func (c *LLMClassifier) Classify(ctx context.Context, descriptions []string) []string {
	if len(descriptions) == 0 {
		return []string{}
	}

	response, err := c.LLM.Generate(ctx, buildPrompt(descriptions))
	if err != nil {
		c.Logger.Warn("llm classification failed, using keywords", zap.Error(err))
		return c.Fallback.Classify(ctx, descriptions)
	}

	result, err := common.ParseJSON[model.ClassifiedCategories](response)
	if err != nil {
		c.Logger.Warn("unparseable llm classification, using keywords", zap.Error(err))
		return c.Fallback.Classify(ctx, descriptions)
	}

	out := make([]string, 0, c.Top)
	seen := make(map[string]bool)
	for _, name := range result.Categories {
		if !isCategory(name) || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
		if len(out) == c.Top {
			break
		}
	}
	return out
}

func buildPrompt(descriptions []string) string {
	if len(descriptions) > maxPromptDescriptions {
		descriptions = descriptions[:maxPromptDescriptions]
	}
	var list strings.Builder
	for _, d := range descriptions {
		fmt.Fprintf(&list, "- %s\n", d)
	}

	return fmt.Sprintf(`You classify GitHub users by the repositories they own.

<CATEGORIES>
%s
</CATEGORIES>

<REPOSITORY DESCRIPTIONS>
%s</REPOSITORY DESCRIPTIONS>

Instructions:
Pick the categories that best describe this user, most relevant first.
Only use names from CATEGORIES. Return an empty list if none apply.
Return a JSON object with key "categories" which is a list of strings.

Example JSON:
{"categories": ["Web Development", "DevOps"]}
`, strings.Join(Categories(), "\n"), list.String())
}
