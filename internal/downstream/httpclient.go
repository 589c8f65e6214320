package downstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/metrics"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/middleware"
)

// ClientConfig holds configuration for the HTTP client wrapper
type ClientConfig struct {
	// Source labels logs and metrics, e.g. "eventbrite".
	Source string
	// Timeout bounds a whole call including body read. Zero means the
	// call waits until the upstream settles or the caller's context ends.
	Timeout time.Duration
	// Transport overrides the base transport; nil uses http.DefaultTransport.
	Transport http.RoundTripper
}

// Client is the single path for outbound calls. It:
// 1. Injects X-Request-ID from context
// 2. Starts a client span and propagates trace context
// 3. Applies the optional timeout
// 4. Logs and records metrics per source
// 5. Maps transport failures to ErrTimeout / ErrUnavailable
type Client struct {
	baseClient *http.Client
	config     ClientConfig
}

func NewClient(config ClientConfig) *Client {
	return &Client{
		baseClient: &http.Client{
			// No global timeout - Do sets it per request.
			Timeout:   0,
			Transport: &TracingTransport{Base: config.Transport},
		},
		config: config,
	}
}

// Do executes req. On success the caller owns resp.Body and must close it.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	reqID := middleware.GetRequestID(ctx)
	if reqID != "" {
		req.Header.Set(middleware.HeaderXRequestID, reqID)
	}

	cancel := context.CancelFunc(func() {})
	if c.config.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
	}
	req = req.WithContext(ctx)

	// Host only: query strings carry API keys and ICS paths are often
	// private share links.
	log := logger.Log.With().
		Str("source", c.config.Source).
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("request_id", reqID).
		Logger()

	start := time.Now()
	resp, err := c.baseClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		cancel()
		mapped := c.mapError(err)
		outcome := metrics.OutcomeUnavailable
		switch {
		case errors.Is(mapped, ErrTimeout):
			outcome = metrics.OutcomeTimeout
		case errors.Is(mapped, ErrCanceled):
			outcome = metrics.OutcomeCanceled
		}
		metrics.RecordUpstream(c.config.Source, outcome, duration)

		log.Warn().
			Err(mapped).
			Dur("duration", duration).
			Msg("downstream_request_failed")
		return nil, mapped
	}

	outcome := metrics.OutcomeOK
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = metrics.OutcomeHTTPError
	}
	metrics.RecordUpstream(c.config.Source, outcome, duration)

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("downstream_request_completed")

	// The deadline must outlive Do: callers still read the body.
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// mapError classifies a transport error while keeping its message for
// the response details. The request URL is reduced to scheme, host and
// path first.
func (c *Client) mapError(err error) error {
	err = redactURL(err)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		// Caller went away.
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	// Connection refused, DNS errors, bad URLs, etc.
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// redactURL rewrites the URL inside a *url.Error. Query strings carry
// API keys and userinfo carries passwords.
func redactURL(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	return &url.Error{Op: ue.Op, URL: safeURL(ue.URL), Err: ue.Err}
}

func safeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}).String()
}

// Get is a convenience method for GET requests
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", c.config.Source, redactURL(err))
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.Do(ctx, req)
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
