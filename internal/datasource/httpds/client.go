// Package httpds implements a small HTTP data source with built-in
// retry/backoff. ONRR publishes the sales dataset as a downloadable CSV, so
// the pipeline can pull it directly instead of requiring a pre-fetched file.
//
// Design goals:
//
//   - Keep a tiny, explicit API (Open).
//   - Handle transient failures with exponential backoff.
//   - Respect context cancellation during requests and backoff waits.
//   - Be easy to test by injecting a custom RoundTripper.
package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config configures the HTTP data source.
//
// Zero values are given sensible defaults:
//   - Timeout:        5m (the CSV is tens of MB)
//   - MaxRetries:     3
//   - InitialBackoff: 200ms
//   - MaxBackoff:     5s
type Config struct {
	// URL is the location of the CSV document.
	URL string

	// Timeout is the per-request timeout applied at the http.Client level.
	Timeout time.Duration

	// MaxRetries is the number of retry attempts after the initial request.
	// MaxRetries=0 means "no retries" (only the initial attempt).
	MaxRetries int

	// InitialBackoff is the base backoff duration for the first retry.
	// Each subsequent retry doubles the previous backoff up to MaxBackoff.
	InitialBackoff time.Duration

	// MaxBackoff caps the exponential backoff duration.
	MaxBackoff time.Duration

	// Transport is an optional custom RoundTripper for tests. When nil the
	// default transport is used.
	Transport http.RoundTripper
}

// Remote is an HTTP data source for a single document.
type Remote struct {
	url            string
	httpClient     *http.Client
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewRemote constructs a Remote data source from cfg.
func NewRemote(cfg Config) *Remote {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 200 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	return &Remote{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
	}
}

// Open performs a GET with retry/backoff and returns the response body. Only
// HTTP 200 counts as success; 5xx responses are retried, other statuses fail
// immediately.
func (r *Remote) Open(ctx context.Context) (io.ReadCloser, error) {
	backoff := r.initialBackoff
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > r.maxBackoff {
				backoff = r.maxBackoff
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := r.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		switch {
		case resp.StatusCode == http.StatusOK:
			return resp.Body, nil
		case resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = fmt.Errorf("fetch %s: %s", r.url, resp.Status)
			continue
		default:
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: %s", r.url, resp.Status)
		}
	}
	return nil, fmt.Errorf("fetch %s: retries exhausted: %w", r.url, lastErr)
}
