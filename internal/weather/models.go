package weather

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ContentTypeJSON is the content type of every archived object.
const ContentTypeJSON = "application/json"

// Layouts for the UTC timestamp embedded in object keys. The fraction is
// omitted when the microseconds are zero, as Python's isoformat does, so
// keys line up with objects archived by earlier deployments.
const (
	TimestampLayout        = "2006-01-02T15:04:05.000000"
	TimestampLayoutSeconds = "2006-01-02T15:04:05"
)

// DefaultCity is used when a request names no cities and no other default is configured.
const DefaultCity = "London"

var (
	// ErrNoCities is returned when a run has nothing to process.
	ErrNoCities = errors.New("no cities requested")

	// ErrEmptyCity is returned when the cities parameter contains a blank entry.
	ErrEmptyCity = errors.New("empty city name")

	// ErrLocationNotFound is returned when geocoding yields no match for a city.
	ErrLocationNotFound = errors.New("location not found")
)

// GeoLocation is one match returned by the geocoding endpoint.
type GeoLocation struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

// Result summarizes a successful run.
type Result struct {
	Message string   `json:"message"`
	Cities  []string `json:"cities"`
}

// ParseCities resolves the comma-separated cities parameter.
// When present is false the defaults are used. Entries are trimmed and a
// blank entry (including an empty parameter) is rejected.
func ParseCities(raw string, present bool, defaults []string) ([]string, error) {
	if !present {
		if len(defaults) == 0 {
			return nil, ErrNoCities
		}
		out := make([]string, len(defaults))
		copy(out, defaults)
		return out, nil
	}

	parts := strings.Split(raw, ",")
	cities := make([]string, 0, len(parts))
	for i, p := range parts {
		city := strings.TrimSpace(p)
		if city == "" {
			return nil, fmt.Errorf("%w at position %d", ErrEmptyCity, i)
		}
		cities = append(cities, city)
	}
	return cities, nil
}

// ObjectKey builds the storage key <domain>/<kind>/<city>-<timestamp>.json.
func ObjectKey(domain, kind, city string, ts time.Time) string {
	return fmt.Sprintf("%s/%s/%s-%s.json", domain, kind, city, FormatTimestamp(ts))
}

// FormatTimestamp renders ts in UTC with microsecond precision.
func FormatTimestamp(ts time.Time) string {
	ts = ts.UTC()
	if ts.Nanosecond()/int(time.Microsecond) == 0 {
		return ts.Format(TimestampLayoutSeconds)
	}
	return ts.Format(TimestampLayout)
}
