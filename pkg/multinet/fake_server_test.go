package multinet

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeServer is an in-memory stand-in for the Multinet service covering the
// workspace, table and graph endpoints the client talks to.
type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	tables   map[string][]map[string]any // "ws/table" -> rows
	graphs   map[string]createGraphBody  // "ws/graph" -> spec
	requests []*http.Request
	bodies   []string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{
		tables: make(map[string][]map[string]any),
		graphs: make(map[string]createGraphBody),
	}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) lastRequest() (*http.Request, string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.requests) == 0 {
		return nil, ""
	}
	return fs.requests[len(fs.requests)-1], fs.bodies[len(fs.bodies)-1]
}

func (fs *fakeServer) requestCount() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.requests)
}

func (fs *fakeServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.requests = append(fs.requests, r)
	fs.bodies = append(fs.bodies, string(body))

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case r.Method == http.MethodPost && len(parts) == 3 && parts[0] == "csv":
		reader := csv.NewReader(strings.NewReader(string(body)))
		records, err := reader.ReadAll()
		if err != nil || len(records) == 0 {
			http.Error(w, `{"message":"malformed csv"}`, http.StatusBadRequest)
			return
		}
		header := records[0]
		rows := make([]map[string]any, 0, len(records)-1)
		for _, rec := range records[1:] {
			row := make(map[string]any, len(header))
			for i, col := range header {
				row[col] = rec[i]
			}
			rows = append(rows, row)
		}
		fs.tables[parts[1]+"/"+parts[2]] = rows
		writeJSON(w, rows)

	case r.Method == http.MethodGet && len(parts) == 4 && parts[0] == "workspaces" && parts[2] == "tables":
		rows, ok := fs.tables[parts[1]+"/"+parts[3]]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"table not found"}`)
			return
		}
		writeJSON(w, rows)

	case r.Method == http.MethodPost && len(parts) == 4 && parts[0] == "workspaces" && parts[2] == "graph":
		var spec createGraphBody
		if err := json.Unmarshal(body, &spec); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		fs.graphs[parts[1]+"/"+parts[3]] = spec
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, parts[3])

	case r.Method == http.MethodGet && len(parts) == 4 && parts[0] == "workspaces" && parts[2] == "graphs":
		spec, ok := fs.graphs[parts[1]+"/"+parts[3]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, GraphSpec{EdgeTable: spec.EdgeTable, NodeTables: spec.NodeTables})

	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
