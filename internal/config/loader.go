package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// configFileUsed tracks the config file loaded by the most recent Load call.
var configFileUsed string

// currentConfig is the configuration from the most recent Load call.
var currentConfig *Config

// findConfigFile finds the config file to use.
// Priority: explicit path > pgscope.yaml > pgscope.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
//
// Two environment namespaces are read: DB_* for the connection settings
// (DB_USER, DB_PASSWORD, DB_HOST, DB_PORT, DB_NAME, plus DB_SSLMODE and the
// pool knobs) and PGSCOPE_* for everything else.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"schemas":          DefaultSchemas,
		"cache_ttl":        DefaultCacheTTL,
		"port":             DefaultPort,
		"output":           DefaultOutput,
		"verbose":          false,
		"database.sslmode": DefaultSSLMode,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Optional config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables
	// DB_USER -> database.user, DB_MAX_OPEN_CONNS -> database.max_open_conns
	if err := k.Load(env.Provider("DB_", ".", func(s string) string {
		return "database." + strings.ToLower(strings.TrimPrefix(s, "DB_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load DB_ env vars: %w", err)
	}
	// PGSCOPE_CACHE_TTL -> cache_ttl; PGSCOPE_SCHEMAS is a comma list.
	if err := k.Load(env.ProviderWithValue("PGSCOPE_", ".", func(s, v string) (string, interface{}) {
		key := strings.ToLower(strings.TrimPrefix(s, "PGSCOPE_"))
		if key == "schemas" {
			return key, splitCommaList(v)
		}
		return key, v
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load PGSCOPE_ env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	currentConfig = &cfg
	return &cfg, nil
}

// GetCurrentConfig returns the configuration loaded by the most recent Load
// call, or nil when Load has not run.
func GetCurrentConfig() *Config {
	return currentConfig
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// splitCommaList splits a comma-separated value into trimmed non-empty parts.
func splitCommaList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
