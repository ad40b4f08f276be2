package weather

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// fakeClient records every upstream call in order.
type fakeClient struct {
	calls    []string
	geo      map[string][]GeoLocation
	failCity string
	err      error
}

func (f *fakeClient) payload(kind, city, apiKey string) ([]byte, error) {
	f.calls = append(f.calls, kind+":"+city)
	if city == f.failCity {
		return nil, f.err
	}
	return []byte(fmt.Sprintf(`{"kind":%q,"name":%q,"appid":%q}`, kind, city, apiKey)), nil
}

func (f *fakeClient) CurrentWeather(_ context.Context, city, apiKey string) ([]byte, error) {
	return f.payload("weather", city, apiKey)
}

func (f *fakeClient) Forecast(_ context.Context, city, apiKey string) ([]byte, error) {
	return f.payload("forecast", city, apiKey)
}

func (f *fakeClient) Geocode(_ context.Context, city, _ string) ([]GeoLocation, error) {
	f.calls = append(f.calls, "geocode:"+city)
	if city == f.failCity {
		return nil, f.err
	}
	return f.geo[city], nil
}

func (f *fakeClient) AirPollution(_ context.Context, lat, lon float64, _ string) ([]byte, error) {
	f.calls = append(f.calls, fmt.Sprintf("pollution:%g,%g", lat, lon))
	return []byte(`{"list":[]}`), nil
}

func (f *fakeClient) AirPollutionForecast(_ context.Context, lat, lon float64, _ string) ([]byte, error) {
	f.calls = append(f.calls, fmt.Sprintf("pollution-forecast:%g,%g", lat, lon))
	return []byte(`{"list":[{"main":{"aqi":2}}]}`), nil
}

type fakeSecrets struct {
	key   string
	err   error
	calls int
}

func (f *fakeSecrets) APIKey(context.Context) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.key, nil
}

type putCall struct {
	key         string
	body        string
	contentType string
}

type fakeStore struct {
	puts    []putCall
	failKey string // substring
	err     error
}

func (f *fakeStore) Put(_ context.Context, key string, body []byte, contentType string) error {
	if f.failKey != "" && strings.Contains(key, f.failKey) {
		return f.err
	}
	f.puts = append(f.puts, putCall{key: key, body: string(body), contentType: contentType})
	return nil
}

func (f *fakeStore) keys() []string {
	out := make([]string, 0, len(f.puts))
	for _, p := range f.puts {
		out = append(out, p.key)
	}
	return out
}

// tickingClock returns a clock advancing by one millisecond per call.
func tickingClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(time.Millisecond)
		return t
	}
}
