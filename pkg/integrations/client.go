package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/mcbanners/banners/pkg/httputil"
	"github.com/mcbanners/banners/pkg/observability"
)

// Client provides shared HTTP functionality for all upstream API clients.
// It applies default headers, rate limiting and the retry policy, and maps
// responses onto [ErrNotFound] and [ErrUnavailable].
type Client struct {
	name     string
	http     *http.Client
	headers  map[string]string
	limiter  *rate.Limiter
	retry    httputil.Policy
	logger   *log.Logger
	maxImage int64
	baseURL  string
}

// Option configures a [Client].
type Option func(*Client)

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. The client's own
// timeout is kept.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithRateLimit caps requests to r per second with the given burst.
// A non-positive r disables limiting.
func WithRateLimit(r float64, burst int) Option {
	return func(c *Client) {
		if r <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(r), max(burst, 1))
	}
}

// WithRetry sets the retry policy for transient failures.
func WithRetry(p httputil.Policy) Option {
	return func(c *Client) { c.retry = p }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxImageSize bounds the number of bytes read by [Client.FetchImage].
func WithMaxImageSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxImage = n
		}
	}
}

// WithBaseURL overrides the backend's API root, for mirrors and tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// NewClient creates a Client named after its backend. Headers are applied to
// all requests; pass nil if none are needed.
func NewClient(name string, headers map[string]string, opts ...Option) *Client {
	c := &Client{
		name:     name,
		http:     NewHTTPClient(),
		headers:  headers,
		retry:    httputil.NoRetry,
		logger:   log.Default(),
		maxImage: defaultMaxImage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the backend name the client was created for.
func (c *Client) Name() string { return c.name }

// BaseURL returns the API root set with [WithBaseURL], or def if none was set.
func (c *Client) BaseURL(def string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return def
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.Do(ctx, http.MethodGet, url, nil, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	return c.Do(ctx, http.MethodGet, url, headers, nil, v)
}

// Do performs a request and JSON-decodes a successful response into v.
// v may be nil when the body is not needed. body is re-read on retries,
// so callers pass a func returning a fresh reader.
func (c *Client) Do(ctx context.Context, method, url string, headers map[string]string, body func() io.Reader, v any) error {
	return httputil.Do(ctx, c.retry, func() error {
		var r io.Reader
		if body != nil {
			r = body()
		}
		rc, err := c.send(ctx, method, url, headers, r)
		if err != nil {
			return err
		}
		defer rc.Close()

		if v == nil {
			_, _ = io.Copy(io.Discard, rc)
			return nil
		}
		if err := json.NewDecoder(rc).Decode(v); err != nil {
			c.hookError(ctx, method, url, err)
			return fmt.Errorf("%w: decode %s: %v", ErrUnavailable, url, err)
		}
		return nil
	})
}

func (c *Client) send(ctx context.Context, method, url string, headers map[string]string, body io.Reader) (io.ReadCloser, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limit: %v", ErrUnavailable, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.Upstream()
	hooks.OnRequest(ctx, c.name, method, url)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, c.name, method, url, err)
		return nil, httputil.Retryable(fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	hooks.OnResponse(ctx, c.name, method, url, resp.StatusCode, time.Since(start))
	c.logger.Debug("upstream request", "backend", c.name, "method", method, "url", url, "status", resp.StatusCode, "duration", time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) hookError(ctx context.Context, method, url string, err error) {
	observability.Upstream().OnError(ctx, c.name, method, url, err)
}

// StatusError reports an unexpected HTTP status. It unwraps to
// [ErrNotFound] or [ErrUnavailable].
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string { return fmt.Sprintf("%v: status %d", e.Err, e.Code) }
func (e *StatusError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return &StatusError{Code: code, Err: ErrNotFound}
	case code >= 500:
		return httputil.Retryable(&StatusError{Code: code, Err: ErrUnavailable})
	default:
		return &StatusError{Code: code, Err: ErrUnavailable}
	}
}
