// Package api is the HTTP resource client for the dashboard backend.
// It performs one JSON request per call, holds no state between calls and
// never retries.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/jonathan/jobdash/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for API requests.
const DefaultUserAgent = "dashctl/1.0"

// RequestIDHeader carries the correlation ID of the activation or mutation.
const RequestIDHeader = "X-Request-ID"

// Options configures the client.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Headers    map[string]string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// DefaultOptions returns sensible defaults for the client.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client sends requests to one base endpoint.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	headers   map[string]string
	log       *slog.Logger
}

// New creates a client for baseURL. A nil opts uses DefaultOptions.
func New(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
		userAgent: userAgent,
		headers:   opts.Headers,
		log:       log,
	}, nil
}

// BaseURL returns the endpoint the client was built for.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends method path with body encoded as JSON and decodes a 2xx response
// into out. A nil body sends no payload; a nil out discards the response.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return fmt.Errorf("unsupported method %q", method)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body for %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request %s %s: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	requestID := RequestIDFromContext(ctx)
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.DebugContext(ctx, "request failed", "method", method, "path", path, "error", err)
		return &TransportError{Method: method, Path: path, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Cause: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.log.DebugContext(ctx, "request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestFailedError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			Detail:     detail(data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Method: method, Path: path, Cause: err}
	}
	return nil
}

// Call is Do with the response decoded into a new T.
func Call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	err := c.Do(ctx, method, path, body, &out)
	return out, err
}

// statusText returns the reason phrase, e.g. "Internal Server Error".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	if text == "" {
		text = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return text
}

// detail extracts the optional string "detail" field of an error body.
func detail(data []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err != nil {
		return ""
	}
	return s
}

// WithRequestID attaches a correlation ID to requests made with ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return logger.WithLogFields(ctx, logger.LogFields{RequestID: &id})
}

// RequestIDFromContext returns the correlation ID on ctx, or a fresh one.
func RequestIDFromContext(ctx context.Context) string {
	if id := logger.GetLogFields(ctx).RequestID; id != nil && *id != "" {
		return *id
	}
	return uuid.NewString()
}
