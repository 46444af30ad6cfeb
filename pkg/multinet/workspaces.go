package multinet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ===================================================================
// Workspaces
// ===================================================================
// All methods map onto the service's /workspaces endpoints

// Workspaces lists the names of all workspaces.
func (a *API) Workspaces(ctx context.Context) ([]string, error) {
	var names []string
	if err := a.get(ctx, "workspaces", nil, &names); err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return names, nil
}

// Workspace returns the raw descriptor of a workspace. The descriptor's shape
// is owned by the server.
func (a *API) Workspace(ctx context.Context, workspace string) (json.RawMessage, error) {
	if workspace == "" {
		return nil, ErrEmptyWorkspace
	}

	resp, err := a.client.Get(ctx, resourcePath("workspaces", workspace), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	if resp.IsJSON() {
		return json.RawMessage(resp.Body), nil
	}

	// Plain-text descriptors are re-encoded as a JSON string.
	raw, err := json.Marshal(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("failed to encode workspace descriptor: %w", err)
	}
	return raw, nil
}

// CreateWorkspace creates a workspace and returns its name as reported by the
// server.
func (a *API) CreateWorkspace(ctx context.Context, workspace string) (string, error) {
	if workspace == "" {
		return "", ErrEmptyWorkspace
	}

	var created string
	if err := a.post(ctx, "/"+resourcePath("workspaces", workspace), nil, nil, &created); err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}
	return created, nil
}

// DeleteWorkspace deletes a workspace and everything in it.
func (a *API) DeleteWorkspace(ctx context.Context, workspace string) (string, error) {
	if workspace == "" {
		return "", ErrEmptyWorkspace
	}

	resp, err := a.client.Delete(ctx, "/"+resourcePath("workspaces", workspace))
	if err != nil {
		return "", fmt.Errorf("failed to delete workspace: %w", err)
	}

	var deleted string
	if err := resp.Decode(&deleted); err != nil {
		return "", fmt.Errorf("failed to delete workspace: %w", err)
	}
	return deleted, nil
}

// AQL runs a read-only AQL query in the workspace and returns the raw result
// documents.
func (a *API) AQL(ctx context.Context, workspace, query string) ([]json.RawMessage, error) {
	if workspace == "" {
		return nil, ErrEmptyWorkspace
	}
	if query == "" {
		return nil, invalidOption(fmt.Errorf("query must not be empty"))
	}

	headers := http.Header{"Content-Type": []string{"text/plain"}}

	var results []json.RawMessage
	if err := a.post(ctx, "/"+resourcePath("workspaces", workspace, "aql"), query, headers, &results); err != nil {
		return nil, fmt.Errorf("failed to run AQL query: %w", err)
	}
	return results, nil
}
