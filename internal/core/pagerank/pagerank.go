package pagerank

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agenthands/ghrank/internal/classify"
	"github.com/agenthands/ghrank/internal/config"
	"github.com/agenthands/ghrank/internal/core/graph"
	"github.com/agenthands/ghrank/internal/core/model"
	"github.com/agenthands/ghrank/internal/provider"
)

type Options struct {
	DampingFactor float64 `json:"damping_factor" validate:"gt=0,lt=1"`
	MaxDepth      int     `json:"depth" validate:"gte=0"`
	NeighborLimit int     `json:"limit" validate:"gte=1"`
	Classify      bool    `json:"classify"`
}

func DefaultOptions() Options {
	return Options{
		DampingFactor: config.DefaultDampingFactor,
		MaxDepth:      config.DefaultDepth,
		NeighborLimit: config.DefaultLimit,
	}
}

// OptionsFromConfig maps the [rank] section onto engine options.
func OptionsFromConfig(c config.RankConfig) Options {
	return Options{
		DampingFactor: c.DampingFactor,
		MaxDepth:      c.Depth,
		NeighborLimit: c.Limit,
		Classify:      c.Classify,
	}
}

// Validate returns a *model.ConfigError for out-of-range options.
func (o Options) Validate() error {
	return config.Check(o)
}

// Engine computes a depth-bounded PageRank over the follow graph, fetching
// snapshots on demand and recording every scored node into a graph.
//
// Nodes are re-fetched and re-scored each time a path reaches them; the last
// score written wins.
type Engine struct {
	Provider   provider.NodeProvider
	Classifier classify.Classifier // required only when Options.Classify is set
	Logger     *zap.Logger
}

func NewEngine(p provider.NodeProvider, c classify.Classifier, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{Provider: p, Classifier: c, Logger: logger}
}

// Rank resolves login and ranks it.
func (e *Engine) Rank(ctx context.Context, login string, g *graph.Graph, opts Options) (float64, error) {
	if err := e.check(opts); err != nil {
		return 0, err
	}
	node, err := e.fetch(ctx, login, opts, opts.MaxDepth)
	if err != nil {
		return 0, err
	}
	return e.rank(ctx, node, g, opts, opts.MaxDepth)
}

// RankSnapshot ranks an already fetched node.
func (e *Engine) RankSnapshot(ctx context.Context, node model.NodeSnapshot, g *graph.Graph, opts Options) (float64, error) {
	if err := e.check(opts); err != nil {
		return 0, err
	}
	return e.rank(ctx, node, g, opts, opts.MaxDepth)
}

func (e *Engine) check(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.Classify && e.Classifier == nil {
		return &model.ConfigError{Field: "classify", Message: "classification requested without a classifier"}
	}
	return nil
}

func (e *Engine) rank(ctx context.Context, node model.NodeSnapshot, g *graph.Graph, opts Options, depth int) (float64, error) {
	d := opts.DampingFactor
	rank := 1 - d
	if depth == 0 {
		return rank, nil
	}

	var sum float64
	for _, login := range node.Followers {
		follower, err := e.fetch(ctx, login, opts, depth-1)
		if err != nil {
			return 0, err
		}
		score, err := e.rank(ctx, follower, g, opts, depth-1)
		if err != nil {
			return 0, err
		}
		// a follower that follows nobody we could see carries no authority
		if n := follower.OutboundCount(); n > 0 {
			sum += score / float64(n)
		}
	}
	rank += d * sum

	var categories []string
	if opts.Classify {
		categories = e.Classifier.Classify(ctx, node.Descriptions)
	}
	g.UpsertRank(node.Login, rank, node.AvatarURL, categories)

	// edges stop one level earlier than scores
	if depth > 1 {
		g.UpsertEdgesFromIncoming(node)
	}

	e.Logger.Debug("ranked node",
		zap.String("login", node.Login),
		zap.Int("depth", depth),
		zap.Float64("rank", rank),
	)
	return rank, nil
}

// fetch asks for descriptions only when the node will end up classified, that is
// when it is going to be ranked with a remaining depth above zero.
func (e *Engine) fetch(ctx context.Context, login string, opts Options, depth int) (model.NodeSnapshot, error) {
	node, err := e.Provider.Fetch(ctx, login, opts.NeighborLimit, opts.Classify && depth > 0)
	if err != nil {
		return model.NodeSnapshot{}, fmt.Errorf("rank %s: %w", login, err)
	}
	return node, nil
}
