// Package commands implements the pgscope subcommands.
package commands

import (
	"log/slog"

	"github.com/pgscope/pgscope/internal/catalog"
	"github.com/pgscope/pgscope/internal/cli/output"
	"github.com/pgscope/pgscope/internal/config"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *catalog.Store
	Catalog  catalog.Catalog
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a connected store wrapped
// in the TTL cache. Returns the context and a cleanup function that must be
// called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx := NewCommandContextWithoutStore(cmd)

	if err := cmdCtx.Cfg.ValidateDatabase(); err != nil {
		return nil, nil, err
	}

	store := catalog.New(cmdCtx.Logger)
	if err := store.Connect(cmd.Context(), cmdCtx.Cfg.Database); err != nil {
		return nil, nil, err
	}

	cmdCtx.Store = store
	cmdCtx.Catalog = catalog.NewCached(store, cmdCtx.Cfg.CacheTTL)

	cleanup := func() {
		_ = store.Close()
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without database
// access. Useful for commands that never touch the catalog.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the loaded configuration, falling back to defaults when
// a command runs outside the usual root command setup (tests, mostly).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Schemas:      config.DefaultSchemas,
		CacheTTL:     config.DefaultCacheTTL,
		Port:         config.DefaultPort,
		OutputFormat: config.DefaultOutput,
		Database: config.Database{
			SSLMode: config.DefaultSSLMode,
		},
	}
}
