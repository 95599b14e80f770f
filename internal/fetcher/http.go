// Package fetcher retrieves raw source payloads over HTTP.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"content_catalog/internal/domain"
)

// maxPayloadBytes bounds how much of a source payload is read into memory.
const maxPayloadBytes = 64 << 20

// Config holds HTTP fetcher configuration.
type Config struct {
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// HTTP fetches raw payloads with a bounded per-request timeout and retries
// with exponential backoff. Any non-success outcome surfaces as a
// domain.TransportError so callers can tell "try again" from "fix the
// source".
type HTTP struct {
	client         *http.Client
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// NewHTTP creates a new HTTP fetcher.
func NewHTTP(cfg Config, logger *slog.Logger) *HTTP {
	return &HTTP{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("component", "fetcher"),
	}
}

// Fetch retrieves the raw payload at url.
func (f *HTTP) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		payload, err := f.doRequest(ctx, url)
		if err == nil {
			return payload, nil
		}
		lastErr = err

		if attempt == f.maxAttempts {
			break
		}

		backoff := f.calculateBackoff(attempt)
		f.logger.Warn("fetch failed, retrying",
			"url", url,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, &domain.TransportError{URL: url, Err: ctx.Err()}
		case <-time.After(backoff):
		}
	}

	return nil, &domain.TransportError{
		URL: url,
		Err: fmt.Errorf("after %d attempts: %w", f.maxAttempts, lastErr),
	}
}

func (f *HTTP) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "ContentCatalog/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return payload, nil
}

func (f *HTTP) calculateBackoff(attempt int) time.Duration {
	backoff := f.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > f.maxBackoff {
		backoff = f.maxBackoff
	}
	return backoff
}
