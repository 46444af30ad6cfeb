package multinet

import (
	"context"
	"fmt"
)

// Tables lists the table names in a workspace, optionally filtered by role.
func (a *API) Tables(ctx context.Context, workspace string, opts TablesOptions) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, invalidOption(err)
	}

	var tables []string
	if err := a.get(ctx, resourcePath("workspaces", workspace, "tables"), opts.Values(), &tables); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// Table returns one page of a table's rows.
func (a *API) Table(ctx context.Context, workspace, table string, opts OffsetLimit) ([]*Row, error) {
	if err := opts.Validate(); err != nil {
		return nil, invalidOption(err)
	}

	var rows []*Row
	if err := a.get(ctx, resourcePath("workspaces", workspace, "tables", table), opts.Values(), &rows); err != nil {
		return nil, fmt.Errorf("failed to get table rows: %w", err)
	}
	return rows, nil
}
