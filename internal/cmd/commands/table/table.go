package table

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/multinet-app/multinet-go/internal/cmd/base"
	"github.com/multinet-app/multinet-go/pkg/multinet"
)

// ListCommand prints the tables of a workspace.
type ListCommand struct {
	*base.Command

	flagType string
}

func (c *ListCommand) Synopsis() string {
	return "List the tables of a workspace"
}

func (c *ListCommand) Help() string {
	return `Usage: multinet tables [options] <workspace>

  Lists table names, optionally only node or edge tables.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := c.NewFlagSet("tables")
	f.StringVar(&c.flagType, "type", "", `Table role filter: "all", "node" or "edge".`)
	return f
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

	tables, err := api.Tables(context.Background(), rest[0], multinet.TablesOptions{
		Type: multinet.TableType(c.flagType),
	})
	if err != nil {
		return c.Fail("error listing tables", err)
	}

	if err := c.Print(tables); err != nil {
		return c.Fail("error printing output", err)
	}
	return 0
}

// RowsCommand prints a page of table rows.
type RowsCommand struct {
	*base.Command

	flagOffset int
	flagLimit  int
}

func (c *RowsCommand) Synopsis() string {
	return "Show the rows of a table"
}

func (c *RowsCommand) Help() string {
	return `Usage: multinet table [options] <workspace> <table>

  Prints one page of a table's rows. Without -offset and -limit the
  server's defaults apply.` +
		c.Flags().Help()
}

func (c *RowsCommand) Flags() *base.FlagSet {
	f := c.NewFlagSet("table")
	f.IntVar(&c.flagOffset, "offset", -1, "Index of the first row to return.")
	f.IntVar(&c.flagLimit, "limit", -1, "Maximum number of rows to return.")
	return f
}

func (c *RowsCommand) Run(args []string) int {
	rest, err := c.Flags().ParseExact(args, 2)
	if err != nil {
		return c.Fail("error parsing flags", err)
	}

	api, err := c.API()
	if err != nil {
		return c.Fail("error creating client", err)
	}

	rows, err := api.Table(context.Background(), rest[0], rest[1], base.OffsetLimit(c.flagOffset, c.flagLimit))
	if err != nil {
		return c.Fail("error getting table rows", err)
	}

	if err := c.Print(rows); err != nil {
		return c.Fail("error printing output", err)
	}
	return 0
}

// UploadCommand uploads one or more files as tables of a workspace.
type UploadCommand struct {
	*base.Command

	flagType            string
	flagCreateWorkspace bool
}

func (c *UploadCommand) Synopsis() string {
	return "Upload files as tables"
}

func (c *UploadCommand) Help() string {
	return `Usage: multinet upload [options] <workspace> [table=]path...

  Uploads each file as a table of the workspace. The table name defaults
  to the file name without its extension. Every file is attempted; failures
  are reported together at the end.

  Example:

    multinet upload -type=csv -create-workspace boston \
      data/members.csv data/clubs.csv membership=data/membership.csv` +
		c.Flags().Help()
}

func (c *UploadCommand) Flags() *base.FlagSet {
	f := c.NewFlagSet("upload")
	f.StringVar(&c.flagType, "type", string(multinet.UploadTypeCSV),
		`Upload format: "csv", "nested_json" or "newick".`)
	f.BoolVar(&c.flagCreateWorkspace, "create-workspace", false,
		"Create the workspace before uploading.")
	return f
}

func (c *UploadCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		return c.Fail("error parsing flags", err)
	}
	rest := f.Args()
	if len(rest) < 2 {
		c.UI.Error("expected a workspace and at least one file")
		return 1
	}
	workspace, specs := rest[0], rest[1:]

	uploadType := multinet.UploadType(c.flagType)
	switch uploadType {
	case multinet.UploadTypeCSV, multinet.UploadTypeNestedJSON, multinet.UploadTypeNewick:
	default:
		c.UI.Error(fmt.Sprintf("unsupported upload type %q", c.flagType))
		return 1
	}

	api, err := c.API()
	if err != nil {
		return c.Fail("error creating client", err)
	}
	ctx := context.Background()

	if c.flagCreateWorkspace {
		c.UI.Info(fmt.Sprintf("Creating workspace %q...", workspace))
		if _, err := api.CreateWorkspace(ctx, workspace); err != nil {
			return c.Fail("error creating workspace", err)
		}
	}

	var result *multierror.Error
	for _, spec := range specs {
		table, path := splitSpec(spec)

		handle, err := multinet.FromFile(c.FS, path)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", table, err))
			continue
		}

		c.UI.Info(fmt.Sprintf("Uploading %s as %q...", path, table))
		uploaded, err := api.UploadTable(ctx, workspace, table, multinet.UploadOptions{
			Type: uploadType,
			Data: handle,
		})
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", table, err))
			continue
		}

		c.Log.Info("table uploaded", "workspace", workspace, "table", table, "type", uploadType)
		c.UI.Output(fmt.Sprintf("%s: %s", table, uploadSummary(uploaded)))
	}

	if err := result.ErrorOrNil(); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

// uploadSummary describes an upload result in one line: the row count when
// the server returned rows, otherwise its summary object or raw answer.
func uploadSummary(r *multinet.UploadResult) string {
	switch {
	case r.Rows != nil:
		return fmt.Sprintf("%d rows", len(r.Rows))
	case r.Summary != nil:
		parts := make([]string, 0, r.Summary.Len())
		for pair := r.Summary.Oldest(); pair != nil; pair = pair.Next() {
			parts = append(parts, fmt.Sprintf("%s=%v", pair.Key, pair.Value))
		}
		return strings.Join(parts, " ")
	default:
		return strings.TrimSpace(string(r.Raw))
	}
}

// splitSpec splits "table=path"; a bare path names the table after the file.
func splitSpec(spec string) (table, path string) {
	if name, p, ok := strings.Cut(spec, "="); ok && name != "" {
		return name, p
	}
	file := filepath.Base(spec)
	return strings.TrimSuffix(file, filepath.Ext(file)), spec
}
