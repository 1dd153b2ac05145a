package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/piresc/roadassist/internal/pkg/circuitbreaker"
	"github.com/piresc/roadassist/internal/pkg/logger"
	nrpkg "github.com/piresc/roadassist/internal/pkg/newrelic"
	"github.com/piresc/roadassist/internal/pkg/retry"
)

const DefaultTimeout = 10 * time.Second

// HTTPError is a non-2xx answer from the remote service
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client is a JSON client for a single upstream with retry and circuit breaking.
// 5xx answers and transport errors are retried; 4xx answers are returned as is.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	name     string
	retrier  *retry.Retrier
	breakers *circuitbreaker.Manager
	logger   *logger.ZapLogger
}

// NewClient creates a client for the upstream called name
func NewClient(name, baseURL string, timeout time.Duration, log *logger.ZapLogger) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	breakerCfg := circuitbreaker.DefaultConfig(name)
	breakerCfg.IsFailure = func(err error) bool {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			return httpErr.StatusCode >= 500
		}
		return err != nil && !errors.Is(err, context.Canceled)
	}

	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		name:       name,
		retrier:    retry.NewWithDefaults(log),
		breakers:   circuitbreaker.NewManager(breakerCfg, log),
		logger:     log,
	}
}

// WithRetrier replaces the retry policy
func (c *Client) WithRetrier(r *retry.Retrier) *Client {
	c.retrier = r
	return c
}

// DoJSON sends body as JSON and decodes a 2xx answer into out when out is not nil
func (c *Client) DoJSON(ctx context.Context, method, path string, headers map[string]string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	url := c.BaseURL + path
	return c.breakers.Execute(ctx, c.name, func(ctx context.Context) error {
		return c.retrier.Execute(ctx, func(ctx context.Context) error {
			req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
			if err != nil {
				return retry.Permanent(fmt.Errorf("failed to create request: %w", err))
			}
			req.Header.Set("Accept", "application/json")
			if body != nil {
				req.Header.Set("Content-Type", "application/json")
			}
			for k, v := range headers {
				req.Header.Set(k, v)
			}

			resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*http.Response, error) {
				return c.HTTPClient.Do(req)
			})
			if err != nil {
				return fmt.Errorf("%s request failed: %w", c.name, err)
			}
			defer resp.Body.Close()

			raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			if err != nil {
				return fmt.Errorf("failed to read %s response: %w", c.name, err)
			}

			if resp.StatusCode >= 500 {
				return &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
			}
			if resp.StatusCode >= 300 {
				c.logger.Warn("Upstream rejected request",
					logger.String("upstream", c.name),
					logger.String("method", method),
					logger.String("path", path),
					logger.Int("status_code", resp.StatusCode))
				return retry.Permanent(&HTTPError{StatusCode: resp.StatusCode, Body: string(raw)})
			}

			if out == nil || len(raw) == 0 {
				return nil
			}
			if err := json.Unmarshal(raw, out); err != nil {
				return retry.Permanent(fmt.Errorf("failed to decode %s response: %w", c.name, err))
			}
			return nil
		})
	})
}

// BreakerStats exposes the breaker state for health reporting
func (c *Client) BreakerStats() map[string]circuitbreaker.CircuitBreakerStats {
	return c.breakers.GetStats()
}
