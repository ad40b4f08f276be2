package function

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/i474232898/weather-archiver/internal/config"
	"github.com/i474232898/weather-archiver/internal/weather"
	"github.com/i474232898/weather-archiver/internal/weather/openweather"
)

// TestUnknownCityDoesNotPoisonLaterInvocations replays a warm container:
// the same handler serves repeated failing requests for an unknown city,
// then a valid one.
func TestUnknownCityDoesNotPoisonLaterInvocations(t *testing.T) {
	var hits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		city := r.URL.Query().Get("q")
		if city == "Atlantis" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"cod":"404","message":"city not found"}`)
			return
		}
		fmt.Fprintf(w, `{"name":%q}`, city)
	}))
	defer upstream.Close()

	cfg := &config.AppConfig{
		SecretSource:       config.SecretSourceEnv,
		OpenWeatherAPIKey:  "test-key",
		StoreBackend:       config.StoreBackendMemory,
		OpenWeatherBaseURL: upstream.URL,
		HTTPTimeout:        5 * time.Second,
		DefaultCities:      []string{"London"},
	}
	h, err := build(context.Background(), cfg, weather.CurrentWeather, zap.NewNop())
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}

	for i := 0; i < 6; i++ {
		_, err := h(context.Background(), events.APIGatewayV2HTTPRequest{
			QueryStringParameters: map[string]string{"cities": "Atlantis"},
		})
		if err == nil {
			t.Fatalf("invocation %d: expected error for unknown city", i)
		}
	}

	resp, err := h(context.Background(), events.APIGatewayV2HTTPRequest{
		QueryStringParameters: map[string]string{"cities": "London"},
	})
	if err != nil {
		t.Fatalf("expected London to succeed, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if got := hits.Load(); got != 7 {
		t.Fatalf("expected 7 upstream requests, got %d", got)
	}
}

// TestUpstreamOutageDoesNotPoisonLaterInvocations covers 5xx responses,
// which would trip a breaker if one were installed.
func TestUpstreamOutageDoesNotPoisonLaterInvocations(t *testing.T) {
	var down atomic.Bool
	down.Store(true)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"name":"London"}`)
	}))
	defer upstream.Close()

	cfg := &config.AppConfig{
		SecretSource:       config.SecretSourceEnv,
		OpenWeatherAPIKey:  "test-key",
		StoreBackend:       config.StoreBackendMemory,
		OpenWeatherBaseURL: upstream.URL,
		HTTPTimeout:        5 * time.Second,
		DefaultCities:      []string{"London"},
	}
	h, err := build(context.Background(), cfg, weather.CurrentWeather, zap.NewNop())
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}

	for i := 0; i < 8; i++ {
		_, err := h(context.Background(), events.APIGatewayV2HTTPRequest{})
		if err == nil {
			t.Fatalf("invocation %d: expected upstream error", i)
		}
		if errors.Is(err, openweather.ErrCircuitOpen) {
			t.Fatalf("invocation %d: unexpected open circuit: %v", i, err)
		}
	}

	down.Store(false)
	if _, err := h(context.Background(), events.APIGatewayV2HTTPRequest{}); err != nil {
		t.Fatalf("expected recovery once upstream is back, got %v", err)
	}
}
