package weather

import (
	"context"
)

// Client abstracts the upstream OpenWeather API. Payload methods return the
// response body as compact JSON, untouched otherwise.
type Client interface {
	CurrentWeather(ctx context.Context, city, apiKey string) ([]byte, error)
	Forecast(ctx context.Context, city, apiKey string) ([]byte, error)
	Geocode(ctx context.Context, city, apiKey string) ([]GeoLocation, error)
	AirPollution(ctx context.Context, lat, lon float64, apiKey string) ([]byte, error)
	AirPollutionForecast(ctx context.Context, lat, lon float64, apiKey string) ([]byte, error)
}

// SecretSource yields the upstream API key.
type SecretSource interface {
	APIKey(ctx context.Context) (string, error)
}

// ObjectStore is where archived payloads are written.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}
