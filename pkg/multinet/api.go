package multinet

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/multinet-app/multinet-go/pkg/multinet/client"
)

// API exposes the Multinet REST operations. Every method performs at most one
// request and holds no state beyond the underlying client.
type API struct {
	client *client.Client
	logger hclog.Logger
}

// New creates an API for the service rooted at baseURL.
func New(baseURL string, opts ...client.Option) (*API, error) {
	c, err := client.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithClient(c), nil
}

// NewFromConfig creates an API from a client configuration.
func NewFromConfig(cfg *client.Config, opts ...client.Option) (*API, error) {
	c, err := client.NewFromConfig(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithClient(c), nil
}

// NewWithClient wraps an existing request client.
func NewWithClient(c *client.Client) *API {
	return &API{
		client: c,
		logger: hclog.NewNullLogger(),
	}
}

// WithLogger returns a copy of the API that logs through logger.
func (a *API) WithLogger(logger hclog.Logger) *API {
	cp := *a
	cp.logger = logger.Named("multinet")
	return &cp
}

// Client returns the underlying request client.
func (a *API) Client() *client.Client {
	return a.client
}

func (a *API) get(ctx context.Context, path string, query url.Values, result any) error {
	resp, err := a.client.Get(ctx, path, query)
	if err != nil {
		return err
	}
	return resp.Decode(result)
}

func (a *API) post(ctx context.Context, path string, body any, headers http.Header, result any) error {
	resp, err := a.client.Post(ctx, path, body, headers)
	if err != nil {
		return err
	}
	return resp.Decode(result)
}

// resourcePath joins escaped path segments.
func resourcePath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}

// nodePath escapes a node ID while keeping its "table/key" separators.
func nodePath(nodeID string) string {
	return resourcePath(strings.Split(nodeID, "/")...)
}
