package multinet

// GraphSpec describes a graph as one edge table over a set of node tables.
type GraphSpec struct {
	EdgeTable  string   `json:"edgeTable" yaml:"edgeTable"`
	NodeTables []string `json:"nodeTables" yaml:"nodeTables"`
}

// NodesSpec is one page of a graph's node IDs.
type NodesSpec struct {
	Count int      `json:"count" yaml:"count"`
	Nodes []string `json:"nodes" yaml:"nodes"`
}

// Edge references its endpoints by node ID.
type Edge struct {
	Edge string `json:"edge" yaml:"edge"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// EdgesSpec is one page of the edges attached to a node.
type EdgesSpec struct {
	Count int    `json:"count" yaml:"count"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// TableType filters tables by role.
type TableType string

const (
	TableTypeAll  TableType = "all"
	TableTypeNode TableType = "node"
	TableTypeEdge TableType = "edge"
)

// UploadType selects the server-side uploader.
type UploadType string

const (
	UploadTypeCSV        UploadType = "csv"
	UploadTypeNestedJSON UploadType = "nested_json"
	UploadTypeNewick     UploadType = "newick"
)

// Direction is an edge's orientation relative to a queried node.
type Direction string

const (
	DirectionAll      Direction = "all"
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// Matches reports whether e is attached to nodeID in direction d.
func (d Direction) Matches(e Edge, nodeID string) bool {
	switch d {
	case DirectionIncoming:
		return e.To == nodeID
	case DirectionOutgoing:
		return e.From == nodeID
	case DirectionAll, "":
		return e.To == nodeID || e.From == nodeID
	}
	return false
}
