package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain"

	acceptHeader = "application/json, text/plain, */*"

	// RequestIDHeader carries the per-request correlation ID.
	RequestIDHeader = "X-Request-Id"
)

// Transport sends a single HTTP request. *http.Client satisfies it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues requests relative to a fixed base URL. It holds no mutable
// state and is safe for concurrent use.
type Client struct {
	baseURL   string
	transport Transport
	headers   http.Header
	logger    hclog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the transport built from the client configuration.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// New creates a client for baseURL using the default configuration.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig creates a client from cfg. cfg is copied and not modified.
func NewFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cp := *cfg
	cfg = &cp
	if cfg.TLSVerify == nil {
		cfg.TLSVerify = DefaultConfig().TLSVerify
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		headers: make(http.Header),
	}
	for k, v := range cfg.Headers {
		c.headers.Set(k, v)
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		c.transport = cfg.NewHTTPClient()
	}
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	c.logger = c.logger.Named("multinet-client")

	return c, nil
}

// BaseURL returns the URL all request paths are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL resolves path (with or without a leading slash) against the base URL
// and appends the encoded query.
func (c *Client) URL(path string, query url.Values) string {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

// Get issues a GET request for path. Only the keys present in query are sent.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, c.URL(path, query), nil, nil)
}

// Post issues a POST request for path.
//
// A string or []byte body is sent verbatim with the caller's Content-Type, or
// text/plain when none is given. Any other non-nil body is encoded as JSON and
// sent as application/json unless the caller overrides the Content-Type.
func (c *Client) Post(ctx context.Context, path string, body any, headers http.Header) (*Response, error) {
	var (
		payload     []byte
		contentType string
	)

	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
		contentType = contentTypeText
	case []byte:
		payload = b
		contentType = contentTypeText
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = encoded
		contentType = contentTypeJSON
	}

	hdr := make(http.Header, len(headers)+1)
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	for k, vs := range headers {
		hdr[http.CanonicalHeaderKey(k)] = vs
	}

	return c.do(ctx, http.MethodPost, c.URL(path, nil), payload, hdr)
}

// Delete issues a DELETE request for path.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, c.URL(path, nil), nil, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, headers http.Header) (*Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, vs := range c.headers {
		req.Header[k] = vs
	}
	for k, vs := range headers {
		req.Header[k] = vs
	}
	req.Header.Set("Accept", acceptHeader)

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	logger := c.logger.With("method", method, "url", endpoint, "request_id", requestID)
	logger.Debug("sending request", "body_length", len(body))

	start := time.Now()
	resp, err := c.transport.Do(req)
	if err != nil {
		logger.Debug("request failed", "error", err)
		return nil, &TransportError{Method: method, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	logger.Debug("received response",
		"status", resp.StatusCode,
		"content_type", resp.Header.Get("Content-Type"),
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       respBody,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}
