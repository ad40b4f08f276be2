package openweather

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"
)

var (
	// ErrUnexpectedStatus is returned for any non-2xx upstream response.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrCircuitOpen is returned while the breaker rejects calls.
	ErrCircuitOpen = errors.New("circuit breaker open")

	errNoHTTPClient = errors.New("http client not configured")
)

// StatusError reports a non-2xx upstream response. It matches
// ErrUnexpectedStatus with errors.Is.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d from %s", ErrUnexpectedStatus, e.Code, e.Path)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// countsAsSuccess tells the breaker which outcomes leave it closed. A 4xx
// means the request was bad, not that the upstream is unhealthy.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 400 && se.Code < 500
}

// getJSON issues a GET and returns the body compacted. The call is never retried.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.http == nil {
		return nil, errNoHTTPClient
	}

	u := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, redact(err)
	}

	body, err := c.execute(func() ([]byte, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &StatusError{Code: resp.StatusCode, Path: path}
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

// execute runs call through the breaker when one is configured.
func (c *Client) execute(call func() ([]byte, error)) ([]byte, error) {
	if c.circuit == nil {
		body, err := call()
		if err != nil {
			return nil, redact(err)
		}
		return body, nil
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		return call()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return nil, redact(err)
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return body, nil
}

// redact strips the appid query parameter from transport errors, which
// embed the full request URL.
func redact(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	parsed, perr := url.Parse(ue.URL)
	if perr != nil {
		return err
	}
	q := parsed.Query()
	if q.Has("appid") {
		q.Set("appid", "REDACTED")
		parsed.RawQuery = q.Encode()
	}
	return &url.Error{Op: ue.Op, URL: parsed.String(), Err: ue.Err}
}
