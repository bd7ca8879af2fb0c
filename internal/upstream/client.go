// Package upstream implements the client for the translation service,
// including the retry policy around the outbound call.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/satisfiyworld/translate-proxy/internal/config"
	"github.com/satisfiyworld/translate-proxy/internal/domain"
)

// ErrorKind classifies a failed translation call.
type ErrorKind int

const (
	// KindStatus marks a non-retryable upstream status, or a retryable one
	// that survived the whole attempt budget.
	KindStatus ErrorKind = iota
	// KindNetwork marks an exhausted budget where every attempt failed on
	// the wire (timeout, reset, DNS).
	KindNetwork
)

// Error is the terminal failure of a translation call.
type Error struct {
	Kind   ErrorKind
	Status int    // upstream HTTP status, KindStatus only
	Body   string // upstream body text, KindStatus only
	Err    error  // last wire error, KindNetwork only
}

// Error returns the failure description.
func (e *Error) Error() string {
	if e.Kind == KindNetwork {
		return fmt.Sprintf("upstream unreachable: %v", e.Err)
	}
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

// Unwrap exposes the underlying wire error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Result is a successful upstream exchange. TranslatedText is nil when the
// response carried none of the recognized shapes; Raw always holds the
// parsed body (or nil if it was not JSON).
type Result struct {
	TranslatedText *string
	Raw            any
}

// Client calls the translation service with bounded retries.
type Client struct {
	httpClient *http.Client
	cfg        *config.Config
	logger     *slog.Logger
}

// New creates a Client. The HTTP client carries no timeout of its own;
// each attempt is bounded by a per-attempt context instead.
func New(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
		logger:     logger,
	}
}

// Translate performs the upstream call for the given params.
//
// Retry policy: network failures and 5xx responses share one attempt
// budget with a linear backoff of RetryBaseDelay * attempt. Any other
// non-2xx status returns immediately. An exhausted 5xx returns the last
// status and body; an exhausted wire failure returns the last error.
func (c *Client) Translate(ctx context.Context, params domain.Params) (*Result, error) {
	payload, err := json.Marshal(domain.UpstreamRequest{
		Q:      params.Text,
		Source: "auto",
		Target: params.TargetLanguage,
		Format: "text",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal upstream request: %w", err)
	}

	var lastErr error
	attempt := 0

	for attempt < c.cfg.MaxAttempts {
		attempt++

		status, body, err := c.do(ctx, payload)
		if err != nil {
			lastErr = err
			c.logger.Warn("upstream attempt failed",
				"attempt", attempt, "error", err)
			if attempt < c.cfg.MaxAttempts {
				c.backoff(ctx, attempt)
				continue
			}
			break
		}

		if status >= http.StatusInternalServerError {
			c.logger.Warn("upstream server error",
				"attempt", attempt, "status", status)
			if attempt < c.cfg.MaxAttempts {
				c.backoff(ctx, attempt)
				continue
			}
			return nil, &Error{Kind: KindStatus, Status: status, Body: string(body)}
		}

		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			c.logger.Warn("upstream rejected request", "status", status)
			return nil, &Error{Kind: KindStatus, Status: status, Body: string(body)}
		}

		// Parse failures degrade to a nil payload; the caller still gets
		// a success with the raw value attached.
		var data any
		if err := json.Unmarshal(body, &data); err != nil {
			data = nil
		}

		return &Result{TranslatedText: extractTranslatedText(data), Raw: data}, nil
	}

	return nil, &Error{Kind: KindNetwork, Err: lastErr}
}

// do performs one POST, bounded by the per-attempt timeout. The body is
// read inside the timeout window; read errors are swallowed so the status
// code stays usable.
func (c *Client) do(ctx context.Context, payload []byte) (int, []byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.AttemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.cfg.UpstreamURL, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		body = nil
	}

	return resp.StatusCode, body, nil
}

// backoff waits RetryBaseDelay * attempt, or returns early if the
// invocation context is cancelled.
func (c *Client) backoff(ctx context.Context, attempt int) {
	timer := time.NewTimer(c.cfg.RetryBaseDelay * time.Duration(attempt))
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
