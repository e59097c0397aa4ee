// API server entry point for CarePath-Insight.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/turtacn/CarePath-Insight/internal/application/analysis"
	"github.com/turtacn/CarePath-Insight/internal/application/reporting"
	"github.com/turtacn/CarePath-Insight/internal/config"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/database/postgres"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/database/redis"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	promx "github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/storage/minio"
	httpserver "github.com/turtacn/CarePath-Insight/internal/interfaces/http"
	"github.com/turtacn/CarePath-Insight/internal/interfaces/http/handlers"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: logger init: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting CarePath-Insight API server",
		logging.Int("port", cfg.Server.Port),
		logging.String("mode", cfg.Server.Mode),
	)

	// PostgreSQL: notes and analysis snapshots.
	conn, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		logger.Fatal("postgres connect failed", logging.Err(err))
	}
	defer conn.Close()

	if cfg.Database.MigrationPath != "" {
		if err := conn.RunMigrations(cfg.Database.MigrationPath); err != nil {
			logger.Fatal("migrations failed", logging.Err(err))
		}
	}

	noteRepo := postgres.NewNoteRepository(conn, logger)
	analysisRepo := postgres.NewAnalysisRepository(conn, logger)

	// Redis: analysis result cache keyed by note fingerprint.
	redisClient, err := redis.NewClient(cfg.Redis, logger)
	if err != nil {
		logger.Fatal("redis connect failed", logging.Err(err))
	}
	defer redisClient.Close()
	resultCache := redis.NewResultCache(redisClient, cfg.Analysis.CacheTTL)

	// Prometheus.
	registry := prometheus.NewRegistry()
	noteMetrics := promx.NewNoteMetrics(registry)
	httpMetrics := promx.NewHTTPMetrics(registry)

	opts := analysis.Options{
		Cache:        resultCache,
		Metrics:      noteMetrics,
		MaxNoteBytes: cfg.Analysis.MaxNoteBytes,
	}

	healthDeps := map[string]handlers.Pinger{
		"postgres": conn,
		"redis":    redisClient,
	}

	// Kafka: analysis completion events, optional.
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, logger)
		defer producer.Close()
		opts.Producer = producer
	}

	// MinIO: raw note archive, optional.
	if cfg.MinIO.Enabled {
		store, err := minio.NewNoteStore(cfg.MinIO, logger)
		if err != nil {
			logger.Fatal("minio init failed", logging.Err(err))
		}
		opts.BlobStore = store
	}

	service := analysis.NewService(noteRepo, analysisRepo, opts, logger)

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		NoteHandler:     handlers.NewNoteHandler(service, logger),
		AnalysisHandler: handlers.NewAnalysisHandler(service, reporting.MustNewRenderer(), logger),
		HealthHandler:   handlers.NewHealthHandler(healthDeps),
		HTTPMetrics:     httpMetrics,
		MetricsHandler:  promx.Handler(registry),
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		Logger:          logger,
	})

	srv := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server failed", logging.Err(err))
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", logging.Err(err))
		}
	}

	logger.Info("server stopped")
}

// loadConfig prefers the config file; when it does not exist the environment
// is the sole source, which suits containerised deployments.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

func newLogger(cfg config.LogConfig) (logging.Logger, error) {
	format := cfg.Format
	if format == "text" {
		format = "console"
	}
	logCfg := logging.LogConfig{
		Level:  cfg.Level,
		Format: format,
	}
	if cfg.Output != "" {
		logCfg.OutputPaths = []string{cfg.Output}
	}
	return logging.NewLogger(logCfg)
}
