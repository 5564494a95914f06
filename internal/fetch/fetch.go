// Package fetch provides the HTTP client used by the provider adapters.
// Every request carries a bounded timeout and expects a JSON body; the
// retry and fallback policy lives with the callers, never here.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lepinkainen/bookdex/internal/apperr"
)

// DefaultTimeout bounds a single request when no other value is configured.
const DefaultTimeout = 10 * time.Second

// Client issues GET requests with a per-request deadline. The zero value
// is not usable; construct with New.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// New creates a Client with the given per-request timeout. A zero or
// negative timeout falls back to DefaultTimeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

// NewWithHTTPClient creates a Client around an existing http.Client.
// Used by tests to point at httptest servers.
func NewWithHTTPClient(hc *http.Client, timeout time.Duration) *Client {
	c := New(timeout)
	c.httpClient = hc
	return c
}

// Timeout returns the per-request deadline.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Get fetches url and returns the raw response body. The request is
// aborted when the deadline expires, yielding a TimeoutError. Non-2xx
// responses yield a StatusError. Requests never send cookies or
// credentials and always declare that JSON is expected.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &apperr.TimeoutError{URL: url, Timeout: c.timeout}
		}
		return nil, fmt.Errorf("request to %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		slog.Debug("Request returned non-success status", "url", url, "status", resp.StatusCode)
		return nil, &apperr.StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &apperr.TimeoutError{URL: url, Timeout: c.timeout}
		}
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}

	return body, nil
}
