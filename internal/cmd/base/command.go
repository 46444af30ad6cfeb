package base

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/multinet-app/multinet-go/internal/config"
	"github.com/multinet-app/multinet-go/pkg/multinet"
	"github.com/multinet-app/multinet-go/pkg/multinet/client"
)

// Command carries what every subcommand shares: logging, terminal UI, the
// filesystem uploads are read from, and the connection flags.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
	FS  afero.Fs

	flagConfig string
	flagAddr   string
	flagFormat string

	cfg *config.Config
}

// NewCommand creates a Command reading files from the OS filesystem.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
		FS:  afero.NewOsFs(),
	}
}

// NewFlagSet returns a flag set preloaded with the connection flags.
func (c *Command) NewFlagSet(name string) *FlagSet {
	f := NewFlagSet(flag.NewFlagSet(name, flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "", "Path to a Multinet CLI config file (HCL).",
	)
	f.StringVar(
		&c.flagAddr, "addr", "",
		fmt.Sprintf("Multinet API base URL. Overrides the config file and %s.", config.EnvAddr),
	)
	f.StringVar(
		&c.flagFormat, "format", "", `Output format: "json" or "yaml".`,
	)

	return f
}

// Config loads the configuration once flags have been parsed.
func (c *Command) Config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	cfg, err := config.Load(c.flagConfig)
	if err != nil {
		return nil, err
	}
	if c.flagAddr != "" {
		cfg.API.BaseURL = c.flagAddr
	}
	if c.flagFormat != "" {
		cfg.Output = c.flagFormat
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	if level := hclog.LevelFromString(cfg.LogLevel); level != hclog.NoLevel {
		c.Log.SetLevel(level)
	}

	c.cfg = cfg
	return cfg, nil
}

// API builds a Multinet API client from the loaded configuration.
func (c *Command) API() (*multinet.API, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}

	cc, err := cfg.ClientConfig()
	if err != nil {
		return nil, err
	}

	api, err := multinet.NewFromConfig(cc, client.WithLogger(c.Log))
	if err != nil {
		return nil, err
	}
	return api.WithLogger(c.Log), nil
}

// Print writes v to the UI in the configured output format.
func (c *Command) Print(v any) error {
	format := config.DefaultOutput
	if c.cfg != nil {
		format = c.cfg.Output
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	if format == "yaml" {
		out, err := jsonToYAML(data)
		if err != nil {
			return err
		}
		c.UI.Output(strings.TrimRight(out, "\n"))
		return nil
	}

	c.UI.Output(string(data))
	return nil
}

// jsonToYAML re-renders JSON as block-style YAML, keeping object key order.
func jsonToYAML(data []byte) (string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return "", fmt.Errorf("failed to convert output to YAML: %w", err)
	}
	resetStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return "", fmt.Errorf("failed to encode YAML output: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode YAML output: %w", err)
	}
	return buf.String(), nil
}

// resetStyle drops the flow and quoting styles the JSON input implies.
func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		resetStyle(child)
	}
}

// Fail reports err on the UI and returns the exit code for a failed command.
func (c *Command) Fail(msg string, err error) int {
	c.UI.Error(fmt.Sprintf("%s: %v", msg, err))
	return 1
}
