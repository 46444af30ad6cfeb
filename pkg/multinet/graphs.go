package multinet

import (
	"context"
	"fmt"
)

// Graphs lists the graph names in a workspace.
func (a *API) Graphs(ctx context.Context, workspace string) ([]string, error) {
	var graphs []string
	if err := a.get(ctx, resourcePath("workspaces", workspace, "graphs"), nil, &graphs); err != nil {
		return nil, fmt.Errorf("failed to list graphs: %w", err)
	}
	return graphs, nil
}

// Graph returns the tables a graph is composed of.
func (a *API) Graph(ctx context.Context, workspace, graph string) (*GraphSpec, error) {
	var spec GraphSpec
	if err := a.get(ctx, resourcePath("workspaces", workspace, "graphs", graph), nil, &spec); err != nil {
		return nil, fmt.Errorf("failed to get graph: %w", err)
	}
	return &spec, nil
}

// Nodes returns one page of a graph's node IDs together with the total count.
func (a *API) Nodes(ctx context.Context, workspace, graph string, opts OffsetLimit) (*NodesSpec, error) {
	if err := opts.Validate(); err != nil {
		return nil, invalidOption(err)
	}

	var nodes NodesSpec
	if err := a.get(ctx, resourcePath("workspaces", workspace, "graphs", graph, "nodes"), opts.Values(), &nodes); err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	return &nodes, nil
}

// Attributes returns the attributes stored on a node.
func (a *API) Attributes(ctx context.Context, workspace, graph, nodeID string) (*Row, error) {
	path := resourcePath("workspaces", workspace, "graphs", graph, "nodes") + "/" + nodePath(nodeID) + "/attributes"

	attrs := NewRow()
	if err := a.get(ctx, path, nil, attrs); err != nil {
		return nil, fmt.Errorf("failed to get node attributes: %w", err)
	}
	return attrs, nil
}

// Edges returns one page of the edges attached to a node. The server's payload
// is returned as-is.
func (a *API) Edges(ctx context.Context, workspace, graph, nodeID string, opts EdgesOptions) (*EdgesSpec, error) {
	if err := opts.Validate(); err != nil {
		return nil, invalidOption(err)
	}

	path := resourcePath("workspaces", workspace, "graphs", graph, "nodes") + "/" + nodePath(nodeID) + "/edges"

	var edges EdgesSpec
	if err := a.get(ctx, path, opts.Values(), &edges); err != nil {
		return nil, fmt.Errorf("failed to list node edges: %w", err)
	}
	return &edges, nil
}

// CreateGraph creates a graph over existing tables and returns its name as
// reported by the server. The server checks that every edge endpoint resolves
// to a row of one of the node tables.
func (a *API) CreateGraph(ctx context.Context, workspace, graph string, opts CreateGraphOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", invalidOption(err)
	}

	body := createGraphBody{
		NodeTables: opts.NodeTables,
		EdgeTable:  opts.EdgeTable,
	}

	var created string
	if err := a.post(ctx, "/"+resourcePath("workspaces", workspace, "graph", graph), body, nil, &created); err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	return created, nil
}
