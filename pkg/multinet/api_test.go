package multinet

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multinet-app/multinet-go/pkg/multinet/client"
)

type capturedRequest struct {
	Method      string
	Path        string
	RawPath     string
	RawQuery    string
	ContentType string
	Body        string
}

// stubServer replies to every request with the same canned response and
// records what it received.
type stubServer struct {
	*httptest.Server

	mu       sync.Mutex
	captured []capturedRequest
}

func newStubServer(t *testing.T, status int, contentType, body string) *stubServer {
	t.Helper()
	s := &stubServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.captured = append(s.captured, capturedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			RawPath:     r.URL.EscapedPath(),
			RawQuery:    r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			Body:        string(b),
		})
		s.mu.Unlock()

		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *stubServer) last(t *testing.T) capturedRequest {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.captured, "no request was made")
	return s.captured[len(s.captured)-1]
}

func (s *stubServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.captured)
}

func newTestAPI(t *testing.T, baseURL string) *API {
	t.Helper()
	api, err := New(baseURL)
	require.NoError(t, err)
	return api
}

func intPtr(i int) *int { return &i }

func TestAPI_Workspaces(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "application/json", `["boston","miserables"]`)
	api := newTestAPI(t, srv.URL)

	names, err := api.Workspaces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"boston", "miserables"}, names)

	req := srv.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/workspaces", req.Path)
	assert.Empty(t, req.RawQuery)
}

func TestAPI_Workspace(t *testing.T) {
	t.Run("empty name fails before any request", func(t *testing.T) {
		srv := newStubServer(t, http.StatusOK, "application/json", `{}`)
		api := newTestAPI(t, srv.URL)

		_, err := api.Workspace(context.Background(), "")
		assert.ErrorIs(t, err, ErrEmptyWorkspace)
		assert.Equal(t, 0, srv.count())
	})

	t.Run("json descriptor", func(t *testing.T) {
		srv := newStubServer(t, http.StatusOK, "application/json", `{"name":"boston","_id":"123"}`)
		api := newTestAPI(t, srv.URL)

		desc, err := api.Workspace(context.Background(), "boston")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"boston","_id":"123"}`, string(desc))
		assert.Equal(t, "/workspaces/boston", srv.last(t).Path)
	})

	t.Run("text descriptor", func(t *testing.T) {
		srv := newStubServer(t, http.StatusOK, "text/html; charset=utf-8", `boston`)
		api := newTestAPI(t, srv.URL)

		desc, err := api.Workspace(context.Background(), "boston")
		require.NoError(t, err)
		assert.JSONEq(t, `"boston"`, string(desc))
	})

	t.Run("not found", func(t *testing.T) {
		srv := newStubServer(t, http.StatusNotFound, "application/json", `{"message":"Workspace not found"}`)
		api := newTestAPI(t, srv.URL)

		_, err := api.Workspace(context.Background(), "nope")
		require.Error(t, err)
		assert.True(t, client.IsStatus(err, http.StatusNotFound))
		assert.Contains(t, err.Error(), "Workspace not found")
	})
}

func TestAPI_Tables(t *testing.T) {
	tests := []struct {
		name      string
		opts      TablesOptions
		wantQuery string
	}{
		{name: "no filter", opts: TablesOptions{}, wantQuery: ""},
		{name: "node tables", opts: TablesOptions{Type: TableTypeNode}, wantQuery: "type=node"},
		{name: "edge tables", opts: TablesOptions{Type: TableTypeEdge}, wantQuery: "type=edge"},
		{name: "all tables", opts: TablesOptions{Type: TableTypeAll}, wantQuery: "type=all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newStubServer(t, http.StatusOK, "application/json", `["members"]`)
			api := newTestAPI(t, srv.URL)

			tables, err := api.Tables(context.Background(), "boston", tt.opts)
			require.NoError(t, err)
			assert.Equal(t, []string{"members"}, tables)

			req := srv.last(t)
			assert.Equal(t, "/workspaces/boston/tables", req.Path)
			assert.Equal(t, tt.wantQuery, req.RawQuery)
		})
	}

	t.Run("invalid type", func(t *testing.T) {
		srv := newStubServer(t, http.StatusOK, "application/json", `[]`)
		api := newTestAPI(t, srv.URL)

		_, err := api.Tables(context.Background(), "boston", TablesOptions{Type: "bogus"})
		assert.ErrorIs(t, err, ErrInvalidOption)
		assert.Equal(t, 0, srv.count())
	})
}

func TestAPI_TablePaging(t *testing.T) {
	tests := []struct {
		name      string
		opts      OffsetLimit
		wantQuery string
	}{
		{name: "unset", opts: OffsetLimit{}, wantQuery: ""},
		{name: "offset only", opts: OffsetLimit{Offset: intPtr(10)}, wantQuery: "offset=10"},
		{name: "limit only", opts: OffsetLimit{Limit: intPtr(5)}, wantQuery: "limit=5"},
		{name: "both", opts: Page(0, 30), wantQuery: "limit=30&offset=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newStubServer(t, http.StatusOK, "application/json", `[{"_key":"1","name":"Paul Revere"}]`)
			api := newTestAPI(t, srv.URL)

			rows, err := api.Table(context.Background(), "boston", "members", tt.opts)
			require.NoError(t, err)
			require.Len(t, rows, 1)

			req := srv.last(t)
			assert.Equal(t, "/workspaces/boston/tables/members", req.Path)
			assert.Equal(t, tt.wantQuery, req.RawQuery)
		})
	}

	t.Run("negative offset", func(t *testing.T) {
		srv := newStubServer(t, http.StatusOK, "application/json", `[]`)
		api := newTestAPI(t, srv.URL)

		_, err := api.Table(context.Background(), "boston", "members", OffsetLimit{Offset: intPtr(-1)})
		assert.ErrorIs(t, err, ErrInvalidOption)
		assert.Equal(t, 0, srv.count())
	})
}

func TestAPI_TableRowsKeepColumnOrder(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "application/json",
		`[{"_key":"1","name":"Paul Revere","age":40,"active":true,"tags":["a"],"extra":null}]`)
	api := newTestAPI(t, srv.URL)

	rows, err := api.Table(context.Background(), "boston", "members", OffsetLimit{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, []string{"_key", "name", "age", "active", "tags", "extra"}, RowKeys(rows[0]))

	age, ok := rows[0].Get("age")
	require.True(t, ok)
	assert.Equal(t, float64(40), age)

	extra, ok := rows[0].Get("extra")
	require.True(t, ok)
	assert.Nil(t, extra)
}

func TestAPI_Graphs(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "application/json", `["boston"]`)
	api := newTestAPI(t, srv.URL)

	graphs, err := api.Graphs(context.Background(), "boston")
	require.NoError(t, err)
	assert.Equal(t, []string{"boston"}, graphs)
	assert.Equal(t, "/workspaces/boston/graphs", srv.last(t).Path)
}

func TestAPI_Graph(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "application/json", `{"edgeTable":"membership","nodeTables":["members","clubs"]}`)
	api := newTestAPI(t, srv.URL)

	spec, err := api.Graph(context.Background(), "boston", "boston")
	require.NoError(t, err)
	assert.Equal(t, &GraphSpec{EdgeTable: "membership", NodeTables: []string{"members", "clubs"}}, spec)
	assert.Equal(t, "/workspaces/boston/graphs/boston", srv.last(t).Path)
}

func TestAPI_Nodes(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "application/json", `{"count":254,"nodes":["members/1","members/2"]}`)
	api := newTestAPI(t, srv.URL)

	nodes, err := api.Nodes(context.Background(), "boston", "boston", OffsetLimit{Limit: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 254, nodes.Count)
	assert.Equal(t, []string{"members/1", "members/2"}, nodes.Nodes)

	req := srv.last(t)
	assert.Equal(t, "/workspaces/boston/graphs/boston/nodes", req.Path)
	assert.Equal(t, "limit=2", req.RawQuery)
}

func TestAPI_Attributes(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "application/json", `{"_key":"1","name":"Paul Revere","age":40}`)
	api := newTestAPI(t, srv.URL)

	attrs, err := api.Attributes(context.Background(), "boston", "boston", "members/1")
	require.NoError(t, err)
	assert.Equal(t, []string{"_key", "name", "age"}, RowKeys(attrs))

	name, _ := attrs.Get("name")
	assert.Equal(t, "Paul Revere", name)
	assert.Equal(t, "/workspaces/boston/graphs/boston/nodes/members/1/attributes", srv.last(t).Path)
}

func TestAPI_AttributesEscapesSegments(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "application/json", `{}`)
	api := newTestAPI(t, srv.URL)

	_, err := api.Attributes(context.Background(), "my ws", "g", "members/a b")
	require.NoError(t, err)
	assert.Equal(t, "/workspaces/my%20ws/graphs/g/nodes/members/a%20b/attributes", srv.last(t).RawPath)
}

func TestAPI_Edges(t *testing.T) {
	payload := `{"count":3,"edges":[{"edge":"membership/7","from":"members/1","to":"nodeId"}]}`
	srv := newStubServer(t, http.StatusOK, "application/json", payload)
	api := newTestAPI(t, srv.URL)

	edges, err := api.Edges(context.Background(), "ws", "g", "nodeId", EdgesOptions{
		Direction:   DirectionIncoming,
		OffsetLimit: OffsetLimit{Offset: intPtr(10)},
	})
	require.NoError(t, err)

	req := srv.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/workspaces/ws/graphs/g/nodes/nodeId/edges", req.Path)
	assert.Equal(t, "direction=incoming&offset=10", req.RawQuery)

	assert.Equal(t, &EdgesSpec{
		Count: 3,
		Edges: []Edge{{Edge: "membership/7", From: "members/1", To: "nodeId"}},
	}, edges)
}

func TestAPI_EdgesInvalidDirection(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "application/json", `{}`)
	api := newTestAPI(t, srv.URL)

	_, err := api.Edges(context.Background(), "ws", "g", "n", EdgesOptions{Direction: "sideways"})
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Equal(t, 0, srv.count())
}

func TestAPI_CreateWorkspace(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "text/html; charset=utf-8", `boston`)
	api := newTestAPI(t, srv.URL)

	name, err := api.CreateWorkspace(context.Background(), "boston")
	require.NoError(t, err)
	assert.Equal(t, "boston", name)

	req := srv.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/workspaces/boston", req.Path)
	assert.Empty(t, req.Body)

	_, err = api.CreateWorkspace(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyWorkspace)
	assert.Equal(t, 1, srv.count())
}

func TestAPI_DeleteWorkspace(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "text/html; charset=utf-8", `boston`)
	api := newTestAPI(t, srv.URL)

	name, err := api.DeleteWorkspace(context.Background(), "boston")
	require.NoError(t, err)
	assert.Equal(t, "boston", name)

	req := srv.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/workspaces/boston", req.Path)
}

func TestAPI_AQL(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "application/json", `[{"_key":"1"},2]`)
	api := newTestAPI(t, srv.URL)

	query := "FOR m IN members RETURN m"
	results, err := api.AQL(context.Background(), "boston", query)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.JSONEq(t, `{"_key":"1"}`, string(results[0]))

	req := srv.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/workspaces/boston/aql", req.Path)
	assert.Equal(t, "text/plain", req.ContentType)
	assert.Equal(t, query, req.Body)

	_, err = api.AQL(context.Background(), "boston", "")
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Equal(t, 1, srv.count())
}

func TestAPI_CreateGraph(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "text/html; charset=utf-8", `g`)
	api := newTestAPI(t, srv.URL)

	name, err := api.CreateGraph(context.Background(), "ws", "g", CreateGraphOptions{
		NodeTables: []string{"a", "b"},
		EdgeTable:  "e",
	})
	require.NoError(t, err)
	assert.Equal(t, "g", name)

	req := srv.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/workspaces/ws/graph/g", req.Path)
	assert.Equal(t, "application/json", req.ContentType)
	assert.JSONEq(t, `{"node_tables":["a","b"],"edge_table":"e"}`, req.Body)
}

func TestAPI_CreateGraphMissingTables(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "text/plain", `g`)
	api := newTestAPI(t, srv.URL)

	_, err := api.CreateGraph(context.Background(), "ws", "g", CreateGraphOptions{EdgeTable: "e"})
	assert.ErrorIs(t, err, ErrInvalidOption)

	_, err = api.CreateGraph(context.Background(), "ws", "g", CreateGraphOptions{NodeTables: []string{"a"}})
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Equal(t, 0, srv.count())
}

func TestAPI_CreateGraphValidationFailed(t *testing.T) {
	srv := newStubServer(t, http.StatusBadRequest, "application/json",
		`{"message":"Nonexistent keys 9 referenced in table: members"}`)
	api := newTestAPI(t, srv.URL)

	_, err := api.CreateGraph(context.Background(), "ws", "g", CreateGraphOptions{
		NodeTables: []string{"members"},
		EdgeTable:  "membership",
	})
	require.Error(t, err)

	var httpErr *client.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.True(t, strings.Contains(err.Error(), "Nonexistent keys"))
}

func TestAPI_TransportFailure(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "application/json", `[]`)
	url := srv.URL
	srv.Close()

	api := newTestAPI(t, url)
	_, err := api.Workspaces(context.Background())
	require.Error(t, err)

	var transportErr *client.TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestAPI_ConcurrentCalls(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "application/json", `["boston"]`)
	api := newTestAPI(t, srv.URL)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := api.Workspaces(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 8, srv.count())
}
