// Package browse implements the interactive terminal browser for the
// column catalog: a schema selector, a table selector, a live substring
// filter, and a column table with the table description underneath.
package browse

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pgscope/pgscope/internal/catalog"
)

// Config holds what the browser needs to run.
type Config struct {
	Catalog catalog.Catalog
	Schemas []string
	Logger  *slog.Logger
}

// Run starts the interactive browser and blocks until the user quits or
// the context is cancelled.
func Run(ctx context.Context, cfg Config) error {
	if len(cfg.Schemas) == 0 {
		return fmt.Errorf("no schemas configured")
	}

	m := newModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("browser error: %w", err)
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
