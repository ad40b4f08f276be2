package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httpapi "github.com/i474232898/weather-archiver/internal/api/http"
	"github.com/i474232898/weather-archiver/internal/bootstrap"
	"github.com/i474232898/weather-archiver/internal/config"
	"github.com/i474232898/weather-archiver/internal/logging"
	"github.com/i474232898/weather-archiver/internal/scheduler"
	"github.com/i474232898/weather-archiver/internal/weather"
	"github.com/i474232898/weather-archiver/internal/weather/openweather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Production)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Core archiver with upstream client, secret source and object store.
	// The breaker only makes sense here, where it lives across many runs.
	archiver, err := bootstrap.NewArchiver(ctx, cfg, logger, openweather.WithCircuitBreaker())
	if err != nil {
		logger.Fatal("failed to build archiver", zap.Error(err))
	}

	jobs := weather.Jobs()

	// Scheduler that periodically archives every job.
	sched := scheduler.New(archiver, jobs, cfg.DefaultCities, cfg.FetchInterval, logger)
	if err := sched.Start(); err != nil {
		logger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := httpapi.NewApp(logger)
	httpapi.RegisterRoutes(app, archiver, jobs, cfg.DefaultCities)

	go func() {
		logger.Info("http server listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
}
