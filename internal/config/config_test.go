package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"S3OWBucket":           "s3-open-weather-data-us-east-1",
		"SECRET_SOURCE":        "",
		"STORE_BACKEND":        "",
		"DEFAULT_CITIES":       "",
		"FETCH_INTERVAL":       "",
		"HTTP_TIMEOUT":         "",
		"OPENWEATHER_BASE_URL": "",
		"PORT":                 "",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SecretSource != SecretSourceSSM || cfg.APIKeyParameter != "OWAPIkey" {
		t.Fatalf("unexpected secret config %q %q", cfg.SecretSource, cfg.APIKeyParameter)
	}
	if cfg.StoreBackend != StoreBackendS3 || cfg.Bucket != "s3-open-weather-data-us-east-1" {
		t.Fatalf("unexpected store config %q %q", cfg.StoreBackend, cfg.Bucket)
	}
	if !reflect.DeepEqual(cfg.DefaultCities, []string{"London"}) {
		t.Fatalf("unexpected default cities %v", cfg.DefaultCities)
	}
	if cfg.FetchInterval != 24*time.Hour || cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("unexpected durations %v %v", cfg.FetchInterval, cfg.HTTPTimeout)
	}
	if cfg.OpenWeatherBaseURL != "http://api.openweathermap.org" || cfg.Port != "8080" {
		t.Fatalf("unexpected base url/port %q %q", cfg.OpenWeatherBaseURL, cfg.Port)
	}
}

func TestLoadLocal(t *testing.T) {
	setEnv(t, map[string]string{
		"S3OWBucket":          "",
		"SECRET_SOURCE":       "env",
		"OPENWEATHER_API_KEY": "abc",
		"STORE_BACKEND":       "memory",
		"STORE_MAX_OBJECTS":   "100",
		"DEFAULT_CITIES":      "London, Paris",
		"FETCH_INTERVAL":      "1h",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreMaxObjects != 100 || cfg.OpenWeatherAPIKey != "abc" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.DefaultCities, []string{"London", "Paris"}) {
		t.Fatalf("unexpected default cities %v", cfg.DefaultCities)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "missing bucket", env: map[string]string{"S3OWBucket": "", "STORE_BACKEND": "s3"}, want: "Bucket"},
		{name: "missing env key", env: map[string]string{"S3OWBucket": "b", "SECRET_SOURCE": "env", "OPENWEATHER_API_KEY": ""}, want: "OpenWeatherAPIKey"},
		{name: "unknown backend", env: map[string]string{"S3OWBucket": "b", "STORE_BACKEND": "gcs"}, want: "StoreBackend"},
		{name: "bad interval", env: map[string]string{"S3OWBucket": "b", "FETCH_INTERVAL": "daily"}, want: "FETCH_INTERVAL"},
		{name: "blank default city", env: map[string]string{"S3OWBucket": "b", "DEFAULT_CITIES": "London,,Paris"}, want: "DEFAULT_CITIES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset variables a previous subtest or the environment may have set.
			setEnv(t, map[string]string{
				"SECRET_SOURCE":  "",
				"STORE_BACKEND":  "",
				"FETCH_INTERVAL": "",
				"DEFAULT_CITIES": "",
			})
			setEnv(t, tt.env)

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
