// Package app assembles the ranking stack from configuration for both binaries.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/agenthands/ghrank/internal/classify"
	"github.com/agenthands/ghrank/internal/config"
	"github.com/agenthands/ghrank/internal/core"
	"github.com/agenthands/ghrank/internal/core/pagerank"
	"github.com/agenthands/ghrank/internal/driver"
	"github.com/agenthands/ghrank/internal/llm"
	"github.com/agenthands/ghrank/internal/provider"
)

func NewProvider(cfg config.GitHubConfig, logger *zap.Logger) *provider.GitHubProvider {
	opts := []provider.Option{
		provider.WithEndpoint(cfg.Endpoint),
		provider.WithRateLimit(cfg.RequestsPerSecond),
		provider.WithLogger(logger),
		provider.WithCircuitBreaker(cfg.BreakerFailures, time.Duration(cfg.BreakerTimeoutSeconds)*time.Second),
	}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, provider.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}))
	}
	return provider.NewGitHubProvider(cfg.Token, opts...)
}

// NewClassifier builds the configured classifier whether or not classification
// is on by default, so a single request can still ask for categories.
func NewClassifier(ctx context.Context, cfg *config.Config, logger *zap.Logger) (classify.Classifier, error) {
	switch cfg.Classifier.Provider {
	case "", "keyword":
		return classify.NewKeywordClassifier(cfg.Classifier.Top), nil
	case "llm":
		client, err := llm.NewClient(ctx, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
		}
		return classify.NewLLMClassifier(client, cfg.Classifier.Top, logger), nil
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", cfg.Classifier.Provider)
	}
}

// NewRanker wires provider, classifier and, when export is set, the Memgraph driver.
// The returned close function releases the driver and is always safe to call.
func NewRanker(ctx context.Context, cfg *config.Config, logger *zap.Logger, export bool) (*core.Ranker, func(), error) {
	noop := func() {}

	classifier, err := NewClassifier(ctx, cfg, logger)
	if err != nil {
		return nil, noop, err
	}
	engine := pagerank.NewEngine(NewProvider(cfg.GitHub, logger), classifier, logger)

	if !export {
		return core.NewRanker(engine, nil, logger), noop, nil
	}

	uri := cfg.Memgraph.URI
	if uri == "" {
		uri = "bolt://localhost:7687"
	}
	d, err := driver.NewMemgraphDriver(ctx, uri, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to connect to Memgraph: %w", err)
	}
	closeFn := func() {
		if err := d.Close(context.Background()); err != nil {
			logger.Warn("failed to close memgraph driver", zap.Error(err))
		}
	}

	r := core.NewRanker(engine, d, logger)
	if err := r.BuildIndices(ctx); err != nil {
		closeFn()
		return nil, noop, err
	}
	return r, closeFn, nil
}
