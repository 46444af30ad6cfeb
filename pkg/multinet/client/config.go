package client

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config contains configuration for the Multinet request client.
//
// Example configuration (HCL):
//
//	base_url   = "http://localhost:5000/api"
//	tls_verify = true
//
// Timeout has no HCL form; it is set in code.
type Config struct {
	// BaseURL is the root every request path is resolved against
	// Example: "https://multinet.example.com/api"
	BaseURL string `hcl:"base_url" json:"baseUrl"`

	// TLSVerify controls TLS certificate verification
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool `hcl:"tls_verify,optional" json:"tlsVerify,omitempty"`

	// Timeout for a single request. Zero leaves the request unbounded and
	// defers to the caller's context.
	Timeout time.Duration `json:"timeout,omitempty"`

	// Headers are sent with every request.
	Headers map[string]string `hcl:"headers,optional" json:"headers,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		TLSVerify: &tlsVerify,
	}
}

var errUnsupportedScheme = errors.New("must use http or https scheme")

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL,
			validation.Required.Error("base_url is required"),
			validation.By(checkScheme),
		),
		validation.Field(&c.Timeout,
			validation.Min(time.Duration(0)).Error("timeout must be non-negative"),
		),
	)
	if err != nil {
		return fmt.Errorf("invalid client config: %w", err)
	}
	return nil
}

func checkScheme(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w, got: %q", errUnsupportedScheme, u.Scheme)
	}
	if u.Host == "" {
		return errors.New("base_url must include a host")
	}
	return nil
}

// NewHTTPClient creates the default transport for this configuration
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}
