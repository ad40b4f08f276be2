package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-archiver/internal/weather"
)

const (
	SecretSourceSSM = "ssm"
	SecretSourceEnv = "env"

	StoreBackendS3     = "s3"
	StoreBackendMemory = "memory"
)

var validate = validator.New()

type AppConfig struct {
	// Bucket is the destination bucket; the variable name matches the deployed stack.
	Bucket string `validate:"required_if=StoreBackend s3"`

	SecretSource      string `validate:"oneof=ssm env"`
	APIKeyParameter   string `validate:"required_if=SecretSource ssm"`
	OpenWeatherAPIKey string `validate:"required_if=SecretSource env"`

	StoreBackend    string `validate:"oneof=s3 memory"`
	StoreMaxObjects int    `validate:"gte=0"` // memory backend only (0 = unlimited)
	S3Endpoint      string `validate:"omitempty,url"`

	OpenWeatherBaseURL string        `validate:"required,url"`
	HTTPTimeout        time.Duration `validate:"gt=0"`

	// DefaultCities are archived when a request names none, and by the scheduler.
	DefaultCities []string `validate:"required,dive,required"`

	// FetchInterval controls how often the scheduler runs every job.
	FetchInterval time.Duration `validate:"gt=0"`

	Port       string `validate:"required,numeric"`
	LogLevel   string
	Production bool
}

// Load reads configuration from environment with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg := &AppConfig{}

	cfg.Bucket = os.Getenv("S3OWBucket")
	cfg.SecretSource = getenvDefault("SECRET_SOURCE", SecretSourceSSM)
	cfg.APIKeyParameter = getenvDefault("OW_API_KEY_PARAMETER", "OWAPIkey")
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")

	cfg.StoreBackend = getenvDefault("STORE_BACKEND", StoreBackendS3)
	cfg.StoreMaxObjects = getenvInt("STORE_MAX_OBJECTS", 0)
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")

	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "http://api.openweathermap.org")

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cities, err := weather.ParseCities(getenvDefault("DEFAULT_CITIES", weather.DefaultCity), true, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_CITIES: %w", err)
	}
	cfg.DefaultCities = cities

	// Matches the daily schedule of the deployed stack.
	interval, err := time.ParseDuration(getenvDefault("FETCH_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.Production = os.Getenv("ENV") == "production"

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
