package commands

import (
	"fmt"
	"strings"

	"github.com/pgscope/pgscope/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables <schema>",
		Short: "List the tables and views of a schema",
		Long: `List the base tables and views of a schema, sorted by name.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json, csv`,
		Example: `  # List tables in the org schema
  pgscope tables org

  # List tables as JSON
  pgscope tables org --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(cmd, args[0])
		},
	}

	return cmd
}

func runTables(cmd *cobra.Command, schema string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := validateSchema(cmdCtx.Cfg.Schemas, schema); err != nil {
		return err
	}

	tables, err := cmdCtx.Catalog.ListTables(cmd.Context(), schema)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return renderJSON(r.Writer(), map[string]any{"schema": schema, "tables": tables})
	case output.ModeCSV:
		for _, t := range tables {
			r.Println(escapeCSV(t))
		}
		return nil
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Tables in %s (%d)", schema, len(tables))))
		r.Println("")
		for _, t := range tables {
			r.Println("- " + t)
		}
		return nil
	default:
		r.Header(1, fmt.Sprintf("Tables in %s (%d)", schema, len(tables)))
		for _, t := range tables {
			r.Println("  " + t)
		}
		return nil
	}
}

// validateSchema checks that schema is one of the configured choices.
func validateSchema(schemas []string, schema string) error {
	for _, s := range schemas {
		if s == schema {
			return nil
		}
	}
	return fmt.Errorf("unknown schema %q (configured: %s)", schema, strings.Join(schemas, ", "))
}
