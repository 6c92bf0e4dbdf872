package commands

import (
	"fmt"

	"github.com/pgscope/pgscope/internal/catalog"
	"github.com/pgscope/pgscope/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewColumnsCommand creates the columns command.
func NewColumnsCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "columns <schema> [table...]",
		Short: "Show column metadata with table and column comments",
		Long: `Show the columns of a schema joined with their data types, nullability,
and the comments stored in the database catalog.

Without table arguments every table in the schema is shown. With exactly one
table its description is printed under the column listing.

Use --filter to keep only rows where the text occurs in the table name,
column name, table description, or column description (case-insensitive).`,
		Example: `  # All columns of the org schema
  pgscope columns org

  # Columns of a single table, with its description
  pgscope columns org users

  # Filter across names and comments
  pgscope columns org --filter email

  # Machine-readable output
  pgscope columns org users --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(cmd, args[0], args[1:], filter)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Case-insensitive substring filter")

	return cmd
}

func runColumns(cmd *cobra.Command, schema string, tables []string, filter string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := validateSchema(cmdCtx.Cfg.Schemas, schema); err != nil {
		return err
	}

	rows, err := cmdCtx.Catalog.FetchCatalog(cmd.Context(), schema, tables)
	if err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}

	filtered := catalog.FilterRows(rows, filter)
	summary := catalog.Summarize(schema, filtered)

	description := ""
	if len(tables) == 1 && len(filtered) > 0 {
		description = catalog.DescribeTable(filtered, tables[0])
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return renderColumnsJSON(r, summary, description, filtered)
	case output.ModeCSV:
		renderRowsCSV(r.Writer(), filtered)
		return nil
	case output.ModeMarkdown:
		renderColumnsMarkdown(r, summary, description, filtered)
		return nil
	default:
		renderColumnsText(r, summary, description, filtered)
		return nil
	}
}

func renderColumnsJSON(r *output.Renderer, summary catalog.Summary, description string, rows []catalog.Row) error {
	if rows == nil {
		rows = []catalog.Row{}
	}
	payload := struct {
		Summary     catalog.Summary `json:"summary"`
		Description string          `json:"description,omitempty"`
		Rows        []catalog.Row   `json:"rows"`
	}{Summary: summary, Description: description, Rows: rows}
	return renderJSON(r.Writer(), payload)
}

func renderColumnsMarkdown(r *output.Renderer, summary catalog.Summary, description string, rows []catalog.Row) {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Columns in %s", summary.Schema)))
	r.Println("")
	r.Println(output.FormatKeyValue("Tables", fmt.Sprintf("%d", summary.Tables)))
	r.Println(output.FormatKeyValue("Columns", fmt.Sprintf("%d", summary.Columns)))
	if description != "" {
		r.Println(output.FormatKeyValue("Description", description))
	}
	r.Println("")

	if len(rows) == 0 {
		r.Println(catalog.NoResultsMessage)
		return
	}
	renderRowsMarkdown(r.Writer(), rows)
}

func renderColumnsText(r *output.Renderer, summary catalog.Summary, description string, rows []catalog.Row) {
	s := r.Styles()
	r.Header(1, fmt.Sprintf("Columns in %s", summary.Schema))
	r.Printf("%s %d    %s %d\n",
		s.Bold.Render("Tables:"), summary.Tables,
		s.Bold.Render("Columns:"), summary.Columns)
	r.Println("")

	if len(rows) == 0 {
		r.Println(s.Muted.Render(catalog.NoResultsMessage))
		return
	}

	renderRowsTable(r.Writer(), rows)

	if description != "" {
		r.Println("")
		r.Printf("%s %s\n", s.Bold.Render("Description:"), description)
	}
}
