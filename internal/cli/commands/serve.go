package commands

import (
	"os/signal"
	"syscall"

	"github.com/pgscope/pgscope/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API server",
		Long: `Start an HTTP server exposing the catalog as a small JSON API:

  GET /api/schemas                    configured schema choices
  GET /api/schemas/{schema}/tables    tables and views of a schema
  GET /api/catalog?schema=&tables=&q= filtered column catalog
  GET /healthz                        liveness check

The server is read-only and caches catalog queries with the configured TTL.`,
		Example: `  # Serve on the default port
  pgscope serve

  # Serve on a custom port
  pgscope serve --port 3000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to serve on (default: 8765)")

	return cmd
}

func runServe(cmd *cobra.Command, port int) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if port == 0 {
		port = cmdCtx.Cfg.Port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(server.Config{
		Catalog: cmdCtx.Catalog,
		Schemas: cmdCtx.Cfg.Schemas,
		Port:    port,
		Logger:  cmdCtx.Logger,
	})

	return srv.Serve(ctx)
}
