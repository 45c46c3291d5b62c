package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/app"
	"github.com/riskibarqy/tournament-hub/internal/config"
	"github.com/riskibarqy/tournament-hub/internal/observability"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tournament-hub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{
		Level:       cfg.LogLevel,
		Service:     cfg.ServiceName,
		Environment: cfg.AppEnv,
		Console:     cfg.AppEnv == config.EnvDev,
	})
	defer func() { _ = logger.Sync() }()

	logger, shutdownLogShip, err := observability.InitLogShipper(cfg, logger)
	if err != nil {
		return fmt.Errorf("init log shipper: %w", err)
	}
	logging.SetDefault(logger)

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}

	profiling, err := observability.StartProfiling(cfg, logger)
	if err != nil {
		return fmt.Errorf("start profiling: %w", err)
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger, metrics)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}

	runErr := a.Run(ctx)
	if runErr != nil {
		logger.Error("app stopped with error", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := profiling.Stop(shutdownCtx); err != nil {
		logger.Warn("stop profiling failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("flush traces failed", "error", err)
	}
	if err := shutdownLogShip(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "drain log shipper: %v\n", err)
	}

	logger.Info("tournament hub stopped")
	return runErr
}
