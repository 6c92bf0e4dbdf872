// Package config provides configuration loading and validation for pgscope.
//
// Configuration is layered (lowest to highest precedence): built-in defaults,
// an optional pgscope.yaml file, environment variables, and CLI flags.
// Database credentials are environment-sourced only (DB_* variables) and are
// never accepted as flags.
package config

import (
	"fmt"
	"time"
)

// Config file names looked up in the working directory.
const (
	ConfigFileName    = "pgscope.yaml"
	ConfigFileNameAlt = "pgscope.yml"
)

// Default configuration values.
const (
	DefaultPort     = 8765
	DefaultCacheTTL = 5 * time.Minute
	DefaultSSLMode  = "disable"
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// DefaultSchemas is the default set of schemas offered for browsing.
var DefaultSchemas = []string{"org", "src", "stg"}

// Database holds the PostgreSQL connection settings.
// User, Password, Host, Port, and Name are all required; Validate reports
// the first missing one.
type Database struct {
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`

	// Connection pool settings.
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

// Config holds all pgscope configuration options.
type Config struct {
	Database Database      `koanf:"database"`
	Schemas  []string      `koanf:"schemas"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
	Port     int           `koanf:"port"`

	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
}

// Validate checks settings that every command depends on.
// Database credentials are validated separately by ValidateDatabase so that
// commands without database access (version, help) still work.
func (c *Config) Validate() error {
	if len(c.Schemas) == 0 {
		return fmt.Errorf("at least one schema must be configured")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %s", c.CacheTTL)
	}
	return nil
}

// ValidateDatabase checks that the five required connection settings are all
// present. A missing value is a configuration error; no connection attempt
// is made when any are absent.
func (c *Config) ValidateDatabase() error {
	d := c.Database
	switch {
	case d.User == "":
		return fmt.Errorf("database user is required (set DB_USER)")
	case d.Password == "":
		return fmt.Errorf("database password is required (set DB_PASSWORD)")
	case d.Host == "":
		return fmt.Errorf("database host is required (set DB_HOST)")
	case d.Port == 0:
		return fmt.Errorf("database port is required (set DB_PORT)")
	case d.Name == "":
		return fmt.Errorf("database name is required (set DB_NAME)")
	}
	return nil
}
