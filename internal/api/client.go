package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"lagerstyring-client/config"
)

const requestIDHeader = "X-Request-ID"

// Client is a thin JSON client for the inventory backend. Every request
// carries a bounded timeout, a correlation ID, and passes through a
// client-side rate limiter so a busy screen cannot flood the backend.
//
// Failures are classified: transport problems surface as *NetworkError,
// non-2xx responses as *HTTPError, undecodable bodies as *ParseError. The
// client never substitutes a default value for a failed request.
type Client struct {
	base    string
	client  *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewClient creates a Client for the configured backend.
func NewClient(cfg *config.APIConfig, log *zap.Logger) *Client {
	return &Client{
		base: cfg.BaseURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst),
		log:     log,
	}
}

// GetJSON issues a GET against path (relative to the base URL) and decodes
// the response body into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// PostJSON issues a POST with body marshalled as JSON and decodes the
// response into out. A nil out discards the body after the status check.
func (c *Client) PostJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request payload: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &NetworkError{Err: err}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, uuid.New().String())

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	c.log.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ParseError{Body: string(raw), Err: err}
	}
	return nil
}
