package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/pgscope/pgscope/internal/config"
)

// Store executes the catalog queries against a pooled PostgreSQL connection.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a Store. If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{logger: logger}
}

// Connect opens the connection pool and verifies it with a ping.
// Callers must have validated the configuration first; Connect does not
// re-check for missing fields. database/sql discards dead pooled
// connections transparently, so stale connections are retried rather than
// surfacing as query errors.
func (s *Store) Connect(ctx context.Context, cfg config.Database) error {
	dsn := buildDSN(cfg)

	s.logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host), slog.String("database", cfg.Name))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	s.db = db
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	if s.db != nil {
		s.logger.Debug("closing database connection")
		return s.db.Close()
	}
	return nil
}

// IsConnected returns true if the connection pool is established.
func (s *Store) IsConnected() bool {
	return s.db != nil
}

// buildDSN constructs a key=value PostgreSQL connection string.
func buildDSN(cfg config.Database) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = config.DefaultSSLMode
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Name, sslmode)

	if cfg.User != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.User)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}

	return dsn
}
