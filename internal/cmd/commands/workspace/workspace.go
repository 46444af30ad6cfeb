package workspace

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/multinet-app/multinet-go/internal/cmd/base"
)

// ListCommand prints every workspace name.
type ListCommand struct {
	*base.Command
}

func (c *ListCommand) Synopsis() string {
	return "List workspaces"
}

func (c *ListCommand) Help() string {
	return `Usage: multinet workspaces [options]

  Lists the names of all workspaces on the server.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	return c.NewFlagSet("workspaces")
}

func (c *ListCommand) Run(args []string) int {
	if _, err := c.Flags().ParseExact(args, 0); err != nil {
		return c.Fail("error parsing flags", err)
	}

	api, err := c.API()
	if err != nil {
		return c.Fail("error creating client", err)
	}

	names, err := api.Workspaces(context.Background())
	if err != nil {
		return c.Fail("error listing workspaces", err)
	}

	if err := c.Print(names); err != nil {
		return c.Fail("error printing output", err)
	}
	return 0
}

// GetCommand prints a workspace descriptor.
type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Show a workspace, or manage workspaces"
}

func (c *GetCommand) Help() string {
	return `Usage: multinet workspace [options] <workspace>
       multinet workspace <subcommand> [options] [args]

  Shows the descriptor of a single workspace. The create and delete
  subcommands manage workspaces.` +
		c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	return c.NewFlagSet("workspace")
}

func (c *GetCommand) Run(args []string) int {
	rest, err := c.Flags().ParseExact(args, 1)
	if err != nil {
		return c.Fail("error parsing flags", err)
	}

	api, err := c.API()
	if err != nil {
		return c.Fail("error creating client", err)
	}

	desc, err := api.Workspace(context.Background(), rest[0])
	if err != nil {
		return c.Fail("error getting workspace", err)
	}

	var v any
	if err := json.Unmarshal(desc, &v); err != nil {
		return c.Fail("error decoding workspace", err)
	}
	if err := c.Print(v); err != nil {
		return c.Fail("error printing output", err)
	}
	return 0
}

// CreateCommand creates a workspace.
type CreateCommand struct {
	*base.Command
}

func (c *CreateCommand) Synopsis() string {
	return "Create a workspace"
}

func (c *CreateCommand) Help() string {
	return `Usage: multinet workspace create [options] <workspace>

  Creates an empty workspace.` +
		c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	return c.NewFlagSet("workspace create")
}

func (c *CreateCommand) Run(args []string) int {
	rest, err := c.Flags().ParseExact(args, 1)
	if err != nil {
		return c.Fail("error parsing flags", err)
	}

	api, err := c.API()
	if err != nil {
		return c.Fail("error creating client", err)
	}

	name, err := api.CreateWorkspace(context.Background(), rest[0])
	if err != nil {
		return c.Fail("error creating workspace", err)
	}

	c.Log.Info("workspace created", "workspace", name)
	c.UI.Info(strings.TrimSpace(name))
	return 0
}

// DeleteCommand deletes a workspace.
type DeleteCommand struct {
	*base.Command

	flagYes bool
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete a workspace"
}

func (c *DeleteCommand) Help() string {
	return `Usage: multinet workspace delete [options] <workspace>

  Deletes a workspace with all of its tables and graphs. Asks for
  confirmation unless -yes is given.` +
		c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := c.NewFlagSet("workspace delete")
	f.BoolVar(&c.flagYes, "yes", false, "Skip the confirmation prompt.")
	return f
}

func (c *DeleteCommand) Run(args []string) int {
	rest, err := c.Flags().ParseExact(args, 1)
	if err != nil {
		return c.Fail("error parsing flags", err)
	}
	workspace := rest[0]

	if !c.flagYes {
		answer, err := c.UI.Ask("Delete workspace " + workspace + " and everything in it? (yes/no)")
		if err != nil {
			return c.Fail("error reading confirmation", err)
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
			c.UI.Warn("Aborted")
			return 1
		}
	}

	api, err := c.API()
	if err != nil {
		return c.Fail("error creating client", err)
	}

	name, err := api.DeleteWorkspace(context.Background(), workspace)
	if err != nil {
		return c.Fail("error deleting workspace", err)
	}

	c.Log.Info("workspace deleted", "workspace", name)
	c.UI.Info(strings.TrimSpace(name))
	return 0
}

// AQLCommand runs an AQL query in a workspace.
type AQLCommand struct {
	*base.Command
}

func (c *AQLCommand) Synopsis() string {
	return "Run an AQL query in a workspace"
}

func (c *AQLCommand) Help() string {
	return `Usage: multinet aql [options] <workspace> <query>

  Runs a read-only AQL query against the workspace's database and prints
  the resulting documents.` +
		c.Flags().Help()
}

func (c *AQLCommand) Flags() *base.FlagSet {
	return c.NewFlagSet("aql")
}

func (c *AQLCommand) Run(args []string) int {
	rest, err := c.Flags().ParseExact(args, 2)
	if err != nil {
		return c.Fail("error parsing flags", err)
	}

	api, err := c.API()
	if err != nil {
		return c.Fail("error creating client", err)
	}

	results, err := api.AQL(context.Background(), rest[0], rest[1])
	if err != nil {
		return c.Fail("error running query", err)
	}

	if err := c.Print(results); err != nil {
		return c.Fail("error printing output", err)
	}
	return 0
}
