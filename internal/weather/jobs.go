package weather

import (
	"context"
	"fmt"
)

type fetchFunc func(ctx context.Context, c Client, city, apiKey string) ([]byte, error)

// Job describes one archive handler: how to fetch a city's payload and
// where to store it.
type Job struct {
	Name    string // function name, e.g. "current-weather"
	Domain  string // first key segment
	Kind    string // second key segment
	Path    string // HTTP route
	Message string // success message returned to the caller

	fetch fetchFunc
}

// Archive jobs served by every surface. Their fetch step is unexported.
var (
	// CurrentWeather archives current conditions by city name.
	CurrentWeather = Job{
		Name:    "current-weather",
		Domain:  "weather",
		Kind:    "current",
		Path:    "/weather/current",
		Message: "Current weather stored",
		fetch: func(ctx context.Context, c Client, city, apiKey string) ([]byte, error) {
			return c.CurrentWeather(ctx, city, apiKey)
		},
	}

	// ForecastWeather archives the 5 day / 3 hour forecast by city name.
	ForecastWeather = Job{
		Name:    "forecast-weather",
		Domain:  "weather",
		Kind:    "forecast",
		Path:    "/weather/forecast",
		Message: "Weather forecast stored",
		fetch: func(ctx context.Context, c Client, city, apiKey string) ([]byte, error) {
			return c.Forecast(ctx, city, apiKey)
		},
	}

	// CurrentAirPollution geocodes each city and archives its current air quality.
	CurrentAirPollution = Job{
		Name:    "current-airpollution",
		Domain:  "airpollution",
		Kind:    "current",
		Path:    "/airpollution/current",
		Message: "Air pollution (current) stored",
		fetch: geocoded(func(ctx context.Context, c Client, lat, lon float64, apiKey string) ([]byte, error) {
			return c.AirPollution(ctx, lat, lon, apiKey)
		}),
	}

	// ForecastAirPollution geocodes each city and archives its air quality forecast.
	ForecastAirPollution = Job{
		Name:    "forecast-airpollution",
		Domain:  "airpollution",
		Kind:    "forecast",
		Path:    "/airpollution/forecast",
		Message: "Air pollution (forecast) stored",
		fetch: geocoded(func(ctx context.Context, c Client, lat, lon float64, apiKey string) ([]byte, error) {
			return c.AirPollutionForecast(ctx, lat, lon, apiKey)
		}),
	}
)

// Jobs returns every archive job in a stable order.
func Jobs() []Job {
	return []Job{CurrentWeather, ForecastWeather, CurrentAirPollution, ForecastAirPollution}
}

// JobByName looks up a job by its function name.
func JobByName(name string) (Job, bool) {
	for _, j := range Jobs() {
		if j.Name == name {
			return j, true
		}
	}
	return Job{}, false
}

// geocoded resolves the city to coordinates with the best (first) match
// before calling fetch.
func geocoded(fetch func(ctx context.Context, c Client, lat, lon float64, apiKey string) ([]byte, error)) fetchFunc {
	return func(ctx context.Context, c Client, city, apiKey string) ([]byte, error) {
		locs, err := c.Geocode(ctx, city, apiKey)
		if err != nil {
			return nil, fmt.Errorf("geocode: %w", err)
		}
		if len(locs) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrLocationNotFound, city)
		}
		best := locs[0]
		return fetch(ctx, c, best.Lat, best.Lon, apiKey)
	}
}
