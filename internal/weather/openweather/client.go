package openweather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-archiver/internal/weather"
)

// DefaultBaseURL is the OpenWeather API host. Requests go over plain http.
const DefaultBaseURL = "http://api.openweathermap.org"

var _ weather.Client = (*Client)(nil)

// Client implements weather.Client against the OpenWeather API.
type Client struct {
	baseURL string
	http    *http.Client
	circuit *gobreaker.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithCircuitBreaker puts a breaker in front of outbound calls. It opens
// after more than five consecutive transport errors or 5xx responses and
// stays open for two minutes. Client errors (4xx) never count against it.
// Only long-running processes should enable it: breaker state outlives a
// single run.
func WithCircuitBreaker() Option {
	return func(c *Client) {
		c.circuit = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:         "openweather",
			MaxRequests:  1,
			Interval:     1 * time.Minute,
			Timeout:      2 * time.Minute,
			IsSuccessful: countsAsSuccess,
		})
	}
}

// New creates a Client. An empty baseURL selects DefaultBaseURL.
func New(client *http.Client, baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentWeather returns the current conditions for a city in metric units.
func (c *Client) CurrentWeather(ctx context.Context, city, apiKey string) ([]byte, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", apiKey)
	values.Set("units", "metric")
	return c.getJSON(ctx, "/data/2.5/weather", values)
}

// Forecast returns the 5 day / 3 hour forecast for a city in metric units.
func (c *Client) Forecast(ctx context.Context, city, apiKey string) ([]byte, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", apiKey)
	values.Set("units", "metric")
	return c.getJSON(ctx, "/data/2.5/forecast", values)
}

// Geocode resolves a city name to at most one location.
func (c *Client) Geocode(ctx context.Context, city, apiKey string) ([]weather.GeoLocation, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("limit", "1")
	values.Set("appid", apiKey)

	body, err := c.getJSON(ctx, "/geo/1.0/direct", values)
	if err != nil {
		return nil, err
	}

	var locs []weather.GeoLocation
	if err := json.Unmarshal(body, &locs); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	return locs, nil
}

// AirPollution returns current air pollution data for a coordinate.
func (c *Client) AirPollution(ctx context.Context, lat, lon float64, apiKey string) ([]byte, error) {
	return c.getJSON(ctx, "/data/2.5/air_pollution", coordValues(lat, lon, apiKey))
}

// AirPollutionForecast returns the hourly air pollution forecast for a coordinate.
func (c *Client) AirPollutionForecast(ctx context.Context, lat, lon float64, apiKey string) ([]byte, error) {
	return c.getJSON(ctx, "/data/2.5/air_pollution/forecast", coordValues(lat, lon, apiKey))
}

func coordValues(lat, lon float64, apiKey string) url.Values {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("appid", apiKey)
	return values
}
