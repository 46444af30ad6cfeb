package cmd

import (
	"github.com/mitchellh/cli"

	"github.com/multinet-app/multinet-go/internal/cmd/base"
	"github.com/multinet-app/multinet-go/internal/cmd/commands/graph"
	"github.com/multinet-app/multinet-go/internal/cmd/commands/table"
	"github.com/multinet-app/multinet-go/internal/cmd/commands/workspace"
	"github.com/multinet-app/multinet-go/internal/version"
)

func commands(b *base.Command) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"workspaces": func() (cli.Command, error) {
			return &workspace.ListCommand{Command: b}, nil
		},
		"workspace": func() (cli.Command, error) {
			return &workspace.GetCommand{Command: b}, nil
		},
		"workspace create": func() (cli.Command, error) {
			return &workspace.CreateCommand{Command: b}, nil
		},
		"workspace delete": func() (cli.Command, error) {
			return &workspace.DeleteCommand{Command: b}, nil
		},
		"aql": func() (cli.Command, error) {
			return &workspace.AQLCommand{Command: b}, nil
		},
		"tables": func() (cli.Command, error) {
			return &table.ListCommand{Command: b}, nil
		},
		"table": func() (cli.Command, error) {
			return &table.RowsCommand{Command: b}, nil
		},
		"upload": func() (cli.Command, error) {
			return &table.UploadCommand{Command: b}, nil
		},
		"graphs": func() (cli.Command, error) {
			return &graph.ListCommand{Command: b}, nil
		},
		"graph": func() (cli.Command, error) {
			return &graph.GetCommand{Command: b}, nil
		},
		"graph create": func() (cli.Command, error) {
			return &graph.CreateCommand{Command: b}, nil
		},
		"nodes": func() (cli.Command, error) {
			return &graph.NodesCommand{Command: b}, nil
		},
		"attributes": func() (cli.Command, error) {
			return &graph.AttributesCommand{Command: b}, nil
		},
		"edges": func() (cli.Command, error) {
			return &graph.EdgesCommand{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &versionCommand{ui: b.UI}, nil
		},
	}
}

type versionCommand struct {
	ui cli.Ui
}

func (c *versionCommand) Synopsis() string { return "Print the CLI version" }
func (c *versionCommand) Help() string     { return "Usage: multinet version" }

func (c *versionCommand) Run(_ []string) int {
	c.ui.Output(version.Version)
	return 0
}
