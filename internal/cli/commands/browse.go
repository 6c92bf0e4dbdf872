package commands

import (
	"github.com/pgscope/pgscope/internal/browse"
	"github.com/spf13/cobra"
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long: `Open an interactive terminal browser for the column catalog.

Pick a schema and a table, filter columns with a live substring search, and
read the table description without leaving the terminal.`,
		Example: `  # Browse the configured schemas
  pgscope browse`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd)
		},
	}
}

func runBrowse(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return browse.Run(cmd.Context(), browse.Config{
		Catalog: cmdCtx.Catalog,
		Schemas: cmdCtx.Cfg.Schemas,
		Logger:  cmdCtx.Logger,
	})
}
