package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/ghrank/internal/app"
	"github.com/agenthands/ghrank/internal/config"
	"github.com/agenthands/ghrank/internal/core/graph"
	"github.com/agenthands/ghrank/internal/core/pagerank"
	"github.com/agenthands/ghrank/internal/logging"
	"github.com/agenthands/ghrank/internal/render"
)

type flags struct {
	dampingFactor float64
	depth         int
	limit         int
	format        string
	output        string
	classify      bool
	configPath    string
	export        bool
	verbose       bool
}

// NewRootCmd builds the ghrank command with its own flag set.
func NewRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "ghrank <username> <token>",
		Short: "Rank GitHub users around a seed by PageRank over the follow graph",
		Long: `ghrank walks the GitHub follower graph around a user and scores every
visited user with a depth-bounded PageRank.

The result is rendered as a JSON document or an SVG picture of the graph.

Examples:
  ghrank octocat $GITHUB_TOKEN -f json
  ghrank octocat $GITHUB_TOKEN -p 2 -l 20 -o octocat.svg`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], args[1], f)
		},
	}

	fs := cmd.Flags()
	fs.Float64VarP(&f.dampingFactor, "damping-factor", "d", config.DefaultDampingFactor, "PageRank damping factor, between 0 and 1")
	fs.IntVarP(&f.depth, "depth", "p", config.DefaultDepth, "maximum recursion depth from the seed user")
	fs.IntVarP(&f.limit, "limit", "l", config.DefaultLimit, "followers and followings fetched per user")
	fs.StringVarP(&f.format, "format", "f", config.DefaultFormat, "output format (json or svg)")
	fs.StringVarP(&f.output, "output", "o", "", "output file path")
	fs.BoolVar(&f.classify, "classify-nodes", false, "tag users with categories from their repository descriptions")
	fs.StringVarP(&f.configPath, "config", "c", "", "path to a TOML config file")
	fs.BoolVar(&f.export, "export", false, "export the ranked graph to Memgraph")
	fs.BoolVar(&f.verbose, "verbose", false, "enable debug logging")

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, token string, f *flags) (*config.Config, error) {
	_ = godotenv.Load()

	path := f.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = config.DefaultConfigPath
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	cfg.GitHub.Token = token

	// flags only win when given explicitly, so the config file keeps its say
	fs := cmd.Flags()
	if fs.Changed("damping-factor") {
		cfg.Rank.DampingFactor = f.dampingFactor
	}
	if fs.Changed("depth") {
		cfg.Rank.Depth = f.depth
	}
	if fs.Changed("limit") {
		cfg.Rank.Limit = f.limit
	}
	if fs.Changed("format") {
		cfg.Output.Format = strings.ToLower(f.format)
	}
	if fs.Changed("output") {
		cfg.Output.Path = f.output
	}
	if f.classify {
		cfg.Rank.Classify = true
	}

	cfg.Log.Development = true
	if f.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, login, token string, f *flags) error {
	cfg, err := loadConfig(cmd, token, f)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	renderer, err := render.ForFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	ctx := context.Background()
	ranker, closeFn, err := app.NewRanker(ctx, cfg, logger, f.export)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := ranker.Run(ctx, login, pagerank.OptionsFromConfig(cfg.Rank))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case cfg.Output.Path != "":
		if cfg.Output.Format == "svg" && !strings.EqualFold(filepath.Ext(cfg.Output.Path), renderer.Extension()) {
			logger.Warn("output file does not have an .svg extension", zap.String("path", cfg.Output.Path))
		}
		return writeFile(cfg.Output.Path, renderer, res.Graph)
	case cfg.Output.Format == "json":
		return renderer.Render(out, res.Graph)
	default:
		path := filepath.Join(os.TempDir(), "ghrank", "graph"+renderer.Extension())
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := writeFile(path, renderer, res.Graph); err != nil {
			return err
		}
		fmt.Fprintln(out, path)
		return nil
	}
}

func writeFile(path string, r render.Renderer, g *graph.Graph) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return r.Render(file, g)
}
