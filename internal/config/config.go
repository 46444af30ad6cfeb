package config

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/multinet-app/multinet-go/pkg/multinet/client"
)

const (
	// EnvAddr overrides the API base URL.
	EnvAddr = "MULTINET_ADDR"

	// EnvLogLevel overrides the log level.
	EnvLogLevel = "MULTINET_LOG_LEVEL"

	DefaultAddr     = "http://localhost:5000/api"
	DefaultLogLevel = "warn"
	DefaultOutput   = "json"
)

// Config is the CLI configuration file.
//
//	log_level = "info"
//	output    = "yaml"
//
//	api {
//	  base_url   = "https://multinet.example.com/api"
//	  timeout    = "30s"
//	  tls_verify = true
//	  headers = {
//	    "X-Team" = "vdl"
//	  }
//	}
type Config struct {
	API *API `hcl:"api,block" json:"api"`

	LogLevel string `hcl:"log_level,optional" json:"log_level"`
	Output   string `hcl:"output,optional" json:"output"`
}

// API configures the connection to the Multinet service.
type API struct {
	BaseURL   string            `hcl:"base_url,optional" json:"base_url"`
	Timeout   string            `hcl:"timeout,optional" json:"timeout"`
	TLSVerify *bool             `hcl:"tls_verify,optional" json:"tls_verify"`
	Headers   map[string]string `hcl:"headers,optional" json:"headers"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		API:      &API{BaseURL: DefaultAddr},
		LogLevel: DefaultLogLevel,
		Output:   DefaultOutput,
	}
}

// Load reads the HCL file at path, if any, then applies environment overrides
// and defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}

		var fileCfg Config
		if err := hclsimple.DecodeFile(path, nil, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
		cfg.merge(&fileCfg)
	}

	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.API.BaseURL = addr
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(other *Config) {
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.Output != "" {
		c.Output = other.Output
	}
	if other.API == nil {
		return
	}
	if other.API.BaseURL != "" {
		c.API.BaseURL = other.API.BaseURL
	}
	if other.API.Timeout != "" {
		c.API.Timeout = other.API.Timeout
	}
	if other.API.TLSVerify != nil {
		c.API.TLSVerify = other.API.TLSVerify
	}
	if len(other.API.Headers) > 0 {
		c.API.Headers = other.API.Headers
	}
}

// Validate checks the values that are not checked by the client itself.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.API, validation.NotNil),
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "error", "off")),
		validation.Field(&c.Output, validation.In("json", "yaml")),
	)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Validate checks the timeout syntax.
func (a *API) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Timeout, validation.By(func(value interface{}) error {
			s, _ := value.(string)
			if s == "" {
				return nil
			}
			if _, err := time.ParseDuration(s); err != nil {
				return fmt.Errorf("invalid timeout %q: %w", s, err)
			}
			return nil
		})),
	)
}

// ClientConfig converts the API block into a request client configuration.
func (c *Config) ClientConfig() (*client.Config, error) {
	if err := c.API.Validate(); err != nil {
		return nil, fmt.Errorf("invalid api block: %w", err)
	}

	cc := client.DefaultConfig()
	cc.BaseURL = c.API.BaseURL
	if c.API.TLSVerify != nil {
		cc.TLSVerify = c.API.TLSVerify
	}
	if c.API.Timeout != "" {
		d, _ := time.ParseDuration(c.API.Timeout)
		cc.Timeout = d
	}
	cc.Headers = c.API.Headers
	return cc, nil
}
