package function

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/i474232898/weather-archiver/internal/bootstrap"
	"github.com/i474232898/weather-archiver/internal/config"
	"github.com/i474232898/weather-archiver/internal/logging"
	"github.com/i474232898/weather-archiver/internal/weather"
)

// Start loads configuration, builds the archiver once per execution
// environment and hands job to the Lambda runtime. It does not return.
func Start(job weather.Job) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// CloudWatch ingests JSON lines.
	logger, err := logging.New(cfg.LogLevel, true)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	h, err := build(context.Background(), cfg, job, logger)
	if err != nil {
		logger.Fatal("failed to build archiver", zap.Error(err))
	}
	lambda.Start(h)
}

// build wires the handler for one function. Each execution environment
// gets a client without a circuit breaker: a warm container serves many
// unrelated invocations and must not carry failures from one to the next.
func build(ctx context.Context, cfg *config.AppConfig, job weather.Job, logger *zap.Logger) (Handler, error) {
	archiver, err := bootstrap.NewArchiver(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewHandler(archiver, job, cfg.DefaultCities, logger.With(zap.String("job", job.Name))), nil
}
