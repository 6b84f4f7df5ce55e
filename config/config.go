package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/govndb/vndb"
)

// EnvPrefix prefixes environment overrides, e.g. GOVNDB_VNDB_TOKEN
const EnvPrefix = "GOVNDB"

// Load loads the configuration from file and environment. A config file is
// optional unless configPath names one explicitly.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".govndb"))
		}

		// Check /etc
		v.AddConfigPath("/etc/govndb/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key that can be
// overridden from the environment needs a default so viper knows about it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("vndb.token", "")
	v.SetDefault("vndb.base_url", vndb.DefaultBaseURL)
	v.SetDefault("vndb.max_concurrent", vndb.DefaultMaxConcurrentRequests)
	v.SetDefault("vndb.delay", "0s")
	v.SetDefault("vndb.timeout", "30s")
	v.SetDefault("vndb.user_agent", "")
	v.SetDefault("vndb.rate_limit", 0)
	v.SetDefault("vndb.rate_burst", 1)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("output.format", "table")
}

// validateConfig runs the struct rules plus the checks that need more than
// one field
func validateConfig(cfg *Config) error {
	if err := check(cfg); err != nil {
		return err
	}

	for name, q := range cfg.Queries {
		if q.Filters == "" {
			continue
		}
		if _, err := vndb.ParseQueryFilter(q.Filters); err != nil {
			return fmt.Errorf("queries.%s.filters: %w", name, err)
		}
	}

	return nil
}

// SavedQuery returns the saved query called name
func (c *Config) SavedQuery(name string) (SavedQuery, error) {
	q, ok := c.Queries[name]
	if !ok {
		return SavedQuery{}, fmt.Errorf("no saved query named %q", name)
	}
	return q, nil
}
