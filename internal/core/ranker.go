package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agenthands/ghrank/internal/core/graph"
	"github.com/agenthands/ghrank/internal/core/pagerank"
	"github.com/agenthands/ghrank/internal/driver"
	"github.com/agenthands/ghrank/internal/metrics"
)

// Ranker runs one ranking walk per call and hands back the rank-sorted graph.
// When Driver is set the sorted graph is also exported to the graph store.
type Ranker struct {
	Engine *pagerank.Engine
	Driver driver.GraphDriver
	Logger *zap.Logger

	UUIDGenerator func() string
	Now           func() time.Time
}

type Result struct {
	RunID    string        `json:"run_id"`
	Login    string        `json:"login"`
	Score    float64       `json:"score"`
	Graph    *graph.Graph  `json:"graph"`
	Duration time.Duration `json:"-"`
}

func NewRanker(engine *pagerank.Engine, d driver.GraphDriver, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{
		Engine:        engine,
		Driver:        d,
		Logger:        logger,
		UUIDGenerator: func() string { return uuid.New().String() },
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

func (r *Ranker) BuildIndices(ctx context.Context) error {
	if r.Driver == nil {
		return nil
	}
	return r.Driver.BuildIndices(ctx)
}

func (r *Ranker) Run(ctx context.Context, login string, opts pagerank.Options) (*Result, error) {
	done := metrics.TimeOp("rank_run")
	success := false
	defer func() { done(success) }()

	runID := r.UUIDGenerator()
	start := r.Now()
	log := r.Logger.With(zap.String("run_id", runID), zap.String("login", login))
	log.Info("starting rank",
		zap.Float64("damping_factor", opts.DampingFactor),
		zap.Int("depth", opts.MaxDepth),
		zap.Int("limit", opts.NeighborLimit),
		zap.Bool("classify", opts.Classify),
	)

	g := graph.New()
	score, err := r.Engine.Rank(ctx, login, g, opts)
	if err != nil {
		log.Error("rank failed", zap.Error(err))
		return nil, err
	}

	sorted := g.SortedByRankDescending()
	metrics.Default().ObserveGraphSize(sorted.Len(), sorted.EdgeCount())

	if r.Driver != nil {
		if err := r.Export(ctx, runID, sorted); err != nil {
			log.Error("export failed", zap.Error(err))
			return nil, err
		}
	}

	res := &Result{
		RunID:    runID,
		Login:    login,
		Score:    score,
		Graph:    sorted,
		Duration: r.Now().Sub(start),
	}
	log.Info("rank finished",
		zap.Float64("score", score),
		zap.Int("nodes", sorted.Len()),
		zap.Int("edges", sorted.EdgeCount()),
		zap.Duration("duration", res.Duration),
	)
	success = true
	return res, nil
}

// Export writes the graph as :User nodes and :FOLLOWS edges tagged with runID.
// Nodes go first so every edge finds both ends.
func (r *Ranker) Export(ctx context.Context, runID string, g *graph.Graph) error {
	if r.Driver == nil {
		return fmt.Errorf("no graph driver configured")
	}
	done := metrics.TimeOp("graph_export")
	success := false
	defer func() { done(success) }()

	nodes := g.Nodes()
	users := make([]map[string]any, len(nodes))
	for i, n := range nodes {
		users[i] = map[string]any{
			"login":      n.Login,
			"rank":       n.Rank,
			"position":   i + 1,
			"avatar_url": n.AvatarURL,
			"categories": n.Categories,
		}
	}
	params := map[string]any{
		"users":     users,
		"run_id":    runID,
		"ranked_at": r.Now().Format(time.RFC3339),
	}
	if _, err := r.Driver.ExecuteQuery(ctx, driver.SaveUsersQuery, params); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}

	edges := g.Edges()
	if len(edges) > 0 {
		follows := make([]map[string]any, len(edges))
		for i, e := range edges {
			follows[i] = map[string]any{"source": e.Source, "target": e.Target}
		}
		params := map[string]any{"follows": follows, "run_id": runID}
		if _, err := r.Driver.ExecuteQuery(ctx, driver.SaveFollowsQuery, params); err != nil {
			return fmt.Errorf("failed to save follows: %w", err)
		}
	}

	r.Logger.Debug("exported graph", zap.String("run_id", runID), zap.Int("nodes", len(nodes)), zap.Int("edges", len(edges)))
	success = true
	return nil
}
