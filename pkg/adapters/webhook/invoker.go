// Package webhook implements the outbound HTTP side of api-call, webhook
// and action nodes.
package webhook

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vitaehq/converse/internal/logging"
	"github.com/vitaehq/converse/pkg/domain"
	"github.com/vitaehq/converse/pkg/ports"
)

// maxResponseBytes caps how much of a response body is read into a flow
// variable mapping. External APIs do not get to balloon session state.
const maxResponseBytes = 1 << 20

// Invoker executes ActionCalls over HTTP. Remote failures of every kind
// (dial errors, timeouts, non-2xx statuses) are normalized into
// ActionResult{OK: false}; a Go error is returned only for local problems.
type Invoker struct {
	client *http.Client
	logger *slog.Logger
}

// Option configures the Invoker.
type Option func(*Invoker)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(i *Invoker) {
		if c != nil {
			i.client = c
		}
	}
}

// WithLogger sets the invoker logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *Invoker) {
		if l != nil {
			i.logger = l
		}
	}
}

// NewInvoker creates an HTTP invoker. Per-call deadlines come from the
// caller's context; the client itself carries no timeout so the engine
// stays in charge of time budgets.
func NewInvoker(opts ...Option) *Invoker {
	inv := &Invoker{
		client: &http.Client{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Invoke performs one HTTP request described by the call.
func (i *Invoker) Invoke(ctx context.Context, call domain.ActionCall) (domain.ActionResult, error) {
	method := strings.ToUpper(strings.TrimSpace(call.Method))
	if method == "" {
		method = http.MethodPost
	}

	var body io.Reader
	if call.Body != "" {
		body = strings.NewReader(call.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, call.URL, body)
	if err != nil {
		return domain.ActionResult{OK: false, Err: "invalid request: " + err.Error()}, nil
	}
	if call.Body != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range call.Headers {
		req.Header.Set(k, v)
	}

	started := time.Now()
	resp, err := i.client.Do(req)
	if err != nil {
		// Covers timeouts and network errors. Context cancellation is
		// still the caller's to observe via ctx.Err().
		if ctx.Err() == context.Canceled {
			return domain.ActionResult{}, ctx.Err()
		}
		i.logger.Warn("outbound call failed", "url", call.URL, "err", err)
		return domain.ActionResult{OK: false, Err: err.Error()}, nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.ActionResult{OK: false, Status: resp.StatusCode, Err: "reading response: " + err.Error()}, nil
	}

	i.logger.Debug("outbound call",
		"method", method,
		"url", call.URL,
		"status", resp.StatusCode,
		"duration", time.Since(started),
	)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	result := domain.ActionResult{OK: ok, Status: resp.StatusCode, Body: data}
	if !ok {
		result.Err = "unexpected status " + resp.Status
	}
	return result, nil
}

var _ ports.ActionInvoker = (*Invoker)(nil)
