package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/ghrank/internal/app"
	"github.com/agenthands/ghrank/internal/config"
	"github.com/agenthands/ghrank/internal/logging"
	"github.com/agenthands/ghrank/internal/metrics"
	"github.com/agenthands/ghrank/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	export := cfg.Memgraph.URI != ""
	ranker, closeFn, err := app.NewRanker(ctx, cfg, logger, export)
	if err != nil {
		logger.Fatal("failed to initialize ranker", zap.Error(err))
	}
	defer closeFn()

	srv := server.NewServer(cfg, ranker, logger)
	if cfg.Server.Metrics {
		srv.Metrics = metrics.EnablePrometheus()
	}
	r := srv.SetupRouter()

	logger.Info("starting server", zap.String("port", cfg.Server.Port), zap.Bool("export", export), zap.Bool("metrics", cfg.Server.Metrics))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
