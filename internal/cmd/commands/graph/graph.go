package graph

import (
	"context"
	"strings"

	"github.com/multinet-app/multinet-go/internal/cmd/base"
	"github.com/multinet-app/multinet-go/pkg/multinet"
)

// ListCommand prints the graphs of a workspace.
type ListCommand struct {
	*base.Command
}

func (c *ListCommand) Synopsis() string {
	return "List the graphs of a workspace"
}

func (c *ListCommand) Help() string {
	return `Usage: multinet graphs [options] <workspace>` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	return c.NewFlagSet("graphs")
}

func (c *ListCommand) Run(args []string) int {
	rest, err := c.Flags().ParseExact(args, 1)
	if err != nil {
		return c.Fail("error parsing flags", err)
	}

	api, err := c.API()
	if err != nil {
		return c.Fail("error creating client", err)
	}

	graphs, err := api.Graphs(context.Background(), rest[0])
	if err != nil {
		return c.Fail("error listing graphs", err)
	}

	if err := c.Print(graphs); err != nil {
		return c.Fail("error printing output", err)
	}
	return 0
}

// GetCommand prints the tables a graph is built from.
type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Show a graph, or create one"
}

func (c *GetCommand) Help() string {
	return `Usage: multinet graph [options] <workspace> <graph>
       multinet graph create [options] <workspace> <graph>

  Shows the edge table and node tables of a graph.` +
		c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	return c.NewFlagSet("graph")
}

func (c *GetCommand) Run(args []string) int {
	rest, err := c.Flags().ParseExact(args, 2)
	if err != nil {
		return c.Fail("error parsing flags", err)
	}

	api, err := c.API()
	if err != nil {
		return c.Fail("error creating client", err)
	}

	spec, err := api.Graph(context.Background(), rest[0], rest[1])
	if err != nil {
		return c.Fail("error getting graph", err)
	}

	if err := c.Print(spec); err != nil {
		return c.Fail("error printing output", err)
	}
	return 0
}

// CreateCommand creates a graph from existing tables.
type CreateCommand struct {
	*base.Command

	flagNodeTables base.StringSlice
	flagEdgeTable  string
}

func (c *CreateCommand) Synopsis() string {
	return "Create a graph from node and edge tables"
}

func (c *CreateCommand) Help() string {
	return `Usage: multinet graph create [options] <workspace> <graph>

  Creates a graph over an edge table and one or more node tables. The
  server rejects the graph if an edge refers to a missing node.

  Example:

    multinet graph create -node-tables=members,clubs -edge-table=membership boston boston` +
		c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := c.NewFlagSet("graph create")
	f.Var(&c.flagNodeTables, "node-tables", "(Required) Comma-separated node table names. May be repeated.")
	f.StringVar(&c.flagEdgeTable, "edge-table", "", "(Required) Edge table name.")
	return f
}

func (c *CreateCommand) Run(args []string) int {
	rest, err := c.Flags().ParseExact(args, 2)
	if err != nil {
		return c.Fail("error parsing flags", err)
	}

	api, err := c.API()
	if err != nil {
		return c.Fail("error creating client", err)
	}

	name, err := api.CreateGraph(context.Background(), rest[0], rest[1], multinet.CreateGraphOptions{
		NodeTables: c.flagNodeTables,
		EdgeTable:  c.flagEdgeTable,
	})
	if err != nil {
		return c.Fail("error creating graph", err)
	}

	c.Log.Info("graph created", "workspace", rest[0], "graph", name)
	c.UI.Info(strings.TrimSpace(name))
	return 0
}

// NodesCommand prints a page of a graph's node IDs.
type NodesCommand struct {
	*base.Command

	flagOffset int
	flagLimit  int
}

func (c *NodesCommand) Synopsis() string {
	return "List the nodes of a graph"
}

func (c *NodesCommand) Help() string {
	return `Usage: multinet nodes [options] <workspace> <graph>` +
		c.Flags().Help()
}

func (c *NodesCommand) Flags() *base.FlagSet {
	f := c.NewFlagSet("nodes")
	f.IntVar(&c.flagOffset, "offset", -1, "Index of the first node to return.")
	f.IntVar(&c.flagLimit, "limit", -1, "Maximum number of nodes to return.")
	return f
}

func (c *NodesCommand) Run(args []string) int {
	rest, err := c.Flags().ParseExact(args, 2)
	if err != nil {
		return c.Fail("error parsing flags", err)
	}

	api, err := c.API()
	if err != nil {
		return c.Fail("error creating client", err)
	}

	nodes, err := api.Nodes(context.Background(), rest[0], rest[1], base.OffsetLimit(c.flagOffset, c.flagLimit))
	if err != nil {
		return c.Fail("error listing nodes", err)
	}

	if err := c.Print(nodes); err != nil {
		return c.Fail("error printing output", err)
	}
	return 0
}

// AttributesCommand prints the attributes of a node.
type AttributesCommand struct {
	*base.Command
}

func (c *AttributesCommand) Synopsis() string {
	return "Show the attributes of a node"
}

func (c *AttributesCommand) Help() string {
	return `Usage: multinet attributes [options] <workspace> <graph> <node>

  The node is given by its full ID, for example members/1.` +
		c.Flags().Help()
}

func (c *AttributesCommand) Flags() *base.FlagSet {
	return c.NewFlagSet("attributes")
}

func (c *AttributesCommand) Run(args []string) int {
	rest, err := c.Flags().ParseExact(args, 3)
	if err != nil {
		return c.Fail("error parsing flags", err)
	}

	api, err := c.API()
	if err != nil {
		return c.Fail("error creating client", err)
	}

	attrs, err := api.Attributes(context.Background(), rest[0], rest[1], rest[2])
	if err != nil {
		return c.Fail("error getting node attributes", err)
	}

	if err := c.Print(attrs); err != nil {
		return c.Fail("error printing output", err)
	}
	return 0
}

// EdgesCommand prints a page of the edges attached to a node.
type EdgesCommand struct {
	*base.Command

	flagOffset    int
	flagLimit     int
	flagDirection string
}

func (c *EdgesCommand) Synopsis() string {
	return "List the edges of a node"
}

func (c *EdgesCommand) Help() string {
	return `Usage: multinet edges [options] <workspace> <graph> <node>` +
		c.Flags().Help()
}

func (c *EdgesCommand) Flags() *base.FlagSet {
	f := c.NewFlagSet("edges")
	f.IntVar(&c.flagOffset, "offset", -1, "Index of the first edge to return.")
	f.IntVar(&c.flagLimit, "limit", -1, "Maximum number of edges to return.")
	f.StringVar(&c.flagDirection, "direction", "", `Edge direction: "all", "incoming" or "outgoing".`)
	return f
}

func (c *EdgesCommand) Run(args []string) int {
	rest, err := c.Flags().ParseExact(args, 3)
	if err != nil {
		return c.Fail("error parsing flags", err)
	}

	api, err := c.API()
	if err != nil {
		return c.Fail("error creating client", err)
	}

	edges, err := api.Edges(context.Background(), rest[0], rest[1], rest[2], multinet.EdgesOptions{
		OffsetLimit: base.OffsetLimit(c.flagOffset, c.flagLimit),
		Direction:   multinet.Direction(c.flagDirection),
	})
	if err != nil {
		return c.Fail("error listing edges", err)
	}

	if err := c.Print(edges); err != nil {
		return c.Fail("error printing output", err)
	}
	return 0
}
