// Package bootstrap wires configuration into a ready-to-use weather.Archiver.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/zap"

	"github.com/i474232898/weather-archiver/internal/config"
	"github.com/i474232898/weather-archiver/internal/secrets"
	"github.com/i474232898/weather-archiver/internal/store"
	"github.com/i474232898/weather-archiver/internal/weather"
	"github.com/i474232898/weather-archiver/internal/weather/openweather"
)

// NewArchiver constructs the upstream client, secret source and object
// store selected by cfg. Clients are built once and reused across runs.
// clientOpts are passed to the upstream client; the long-running server
// uses them to enable the circuit breaker.
func NewArchiver(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger, clientOpts ...openweather.Option) (*weather.Archiver, error) {
	// Shared HTTP client for outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	client := openweather.New(httpClient, cfg.OpenWeatherBaseURL, clientOpts...)

	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg != nil {
			return *awsCfg, nil
		}
		c, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return aws.Config{}, fmt.Errorf("load aws config: %w", err)
		}
		awsCfg = &c
		return c, nil
	}

	var src weather.SecretSource
	switch cfg.SecretSource {
	case config.SecretSourceEnv:
		src = secrets.Static(cfg.OpenWeatherAPIKey)
	default:
		c, err := loadAWS()
		if err != nil {
			return nil, err
		}
		src = secrets.NewSSM(ssm.NewFromConfig(c), cfg.APIKeyParameter)
	}

	var dst weather.ObjectStore
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		dst = store.NewMemoryStore(cfg.StoreMaxObjects)
	default:
		c, err := loadAWS()
		if err != nil {
			return nil, err
		}
		s3Client := s3.NewFromConfig(c, func(o *s3.Options) {
			if cfg.S3Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.S3Endpoint)
				o.UsePathStyle = true
			}
		})
		dst = store.NewS3Store(s3Client, cfg.Bucket)
	}

	logger.Info("archiver configured",
		zap.String("secret_source", cfg.SecretSource),
		zap.String("store_backend", cfg.StoreBackend),
		zap.String("bucket", cfg.Bucket),
		zap.Strings("default_cities", cfg.DefaultCities),
		zap.Bool("circuit_breaker", len(clientOpts) > 0),
	)

	return weather.NewArchiver(client, src, dst, logger), nil
}
