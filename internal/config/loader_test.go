package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredDBEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "scope")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "warehouse")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredDBEnv(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"org", "src", "stg"}, cfg.Schemas)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.False(t, cfg.Verbose)
}

func TestLoad_DatabaseEnv(t *testing.T) {
	setRequiredDBEnv(t)
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("DB_CONN_MAX_LIFETIME", "1h")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "scope", cfg.Database.User)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "warehouse", cfg.Database.Name)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	require.NoError(t, cfg.ValidateDatabase())
}

func TestLoad_SchemasEnvCommaList(t *testing.T) {
	setRequiredDBEnv(t)
	t.Setenv("PGSCOPE_SCHEMAS", "org, analytics ,raw")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"org", "analytics", "raw"}, cfg.Schemas)
}

func TestLoad_CacheTTLEnv(t *testing.T) {
	setRequiredDBEnv(t)
	t.Setenv("PGSCOPE_CACHE_TTL", "90s")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
}

func TestLoad_ConfigFile(t *testing.T) {
	setRequiredDBEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "pgscope.yaml")
	content := []byte("port: 9900\nschemas:\n  - org\n  - src\ncache_ttl: 2m\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 9900, cfg.Port)
	assert.Equal(t, []string{"org", "src"}, cfg.Schemas)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	setRequiredDBEnv(t)
	t.Setenv("PGSCOPE_PORT", "7000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", DefaultPort, "")
	flags.StringP("output", "o", "", "")
	require.NoError(t, flags.Parse([]string{"--port", "8000", "--output", "json"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoad_UnchangedFlagsIgnored(t *testing.T) {
	setRequiredDBEnv(t)
	t.Setenv("PGSCOPE_PORT", "7000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", DefaultPort, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port, "unset flag must not mask env value")
}

func TestValidateDatabase_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Database)
		errMsg string
	}{
		{"missing user", func(d *Database) { d.User = "" }, "DB_USER"},
		{"missing password", func(d *Database) { d.Password = "" }, "DB_PASSWORD"},
		{"missing host", func(d *Database) { d.Host = "" }, "DB_HOST"},
		{"missing port", func(d *Database) { d.Port = 0 }, "DB_PORT"},
		{"missing name", func(d *Database) { d.Name = "" }, "DB_NAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Database: Database{
					User:     "u",
					Password: "p",
					Host:     "h",
					Port:     5432,
					Name:     "n",
				},
			}
			tt.mutate(&cfg.Database)

			err := cfg.ValidateDatabase()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Schemas: []string{"org"}, CacheTTL: time.Minute}
	assert.NoError(t, cfg.Validate())

	cfg.Schemas = nil
	assert.Error(t, cfg.Validate())

	cfg.Schemas = []string{"org"}
	cfg.CacheTTL = 0
	assert.Error(t, cfg.Validate())
}
