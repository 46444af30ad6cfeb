// Package multinet is a client for the Multinet graph-data REST service.
//
// # Overview
//
// A Multinet server stores workspaces. Each workspace holds tables (rows with
// an open schema, playing a node or edge role) and graphs (one edge table over
// a set of node tables). API exposes one method per remote operation; each
// method builds a URL, issues exactly one request through the
// [client.Client], and decodes the JSON or text response.
//
// # Usage
//
//	api, err := multinet.New("http://localhost:5000/api")
//	if err != nil {
//		return err
//	}
//
//	result, err := api.UploadTable(ctx, "boston", "members", multinet.UploadOptions{
//		Type: multinet.UploadTypeCSV,
//		Data: multinet.InlineText(csv),
//	})
//
//	graph, err := api.CreateGraph(ctx, "boston", "clubs", multinet.CreateGraphOptions{
//		NodeTables: []string{"members", "clubs"},
//		EdgeTable:  "membership",
//	})
//
// # Endpoints
//
// Reads:
//   - GET /workspaces
//   - GET /workspaces/:workspace
//   - GET /workspaces/:workspace/tables?type=
//   - GET /workspaces/:workspace/tables/:table?offset=&limit=
//   - GET /workspaces/:workspace/graphs
//   - GET /workspaces/:workspace/graphs/:graph
//   - GET /workspaces/:workspace/graphs/:graph/nodes?offset=&limit=
//   - GET /workspaces/:workspace/graphs/:graph/nodes/:node/attributes
//   - GET /workspaces/:workspace/graphs/:graph/nodes/:node/edges?direction=&offset=&limit=
//
// Writes:
//   - POST   /workspaces/:workspace
//   - DELETE /workspaces/:workspace
//   - POST   /workspaces/:workspace/aql
//   - POST   /:type/:workspace/:table (csv, nested_json, newick)
//   - POST   /workspaces/:workspace/graph/:graph
//
// # Errors
//
// Precondition failures (ErrEmptyWorkspace, ErrInvalidOption) and unreadable
// upload data (*DecodeError) are reported before any request is made.
// Non-2xx responses surface as *client.HTTPError and network failures as
// *client.TransportError. Nothing is retried.
package multinet
