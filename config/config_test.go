package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/govndb/vndb"
)

// isolate runs the test from an empty directory with an empty home so no
// stray config file is picked up
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, vndb.DefaultBaseURL, cfg.VNDB.BaseURL)
	assert.Equal(t, 10, cfg.VNDB.MaxConcurrent)
	assert.Equal(t, 30*time.Second, cfg.VNDB.Timeout)
	assert.Zero(t, cfg.VNDB.Delay)
	assert.Empty(t, cfg.VNDB.Token)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
	assert.Equal(t, "table", cfg.Output.Format)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
vndb:
  token: abc-123
  max_concurrent: 3
  delay: 250ms
  timeout: 5s
  rate_limit: 2.5
  rate_burst: 4
logging:
  level: debug
  format: json
output:
  format: yaml
queries:
  top-en:
    resource: vn
    filters: '["lang", "=", "en"]'
    fields: [title, rating]
    sort: rating
    reverse: true
    results: 25
    where: rating > 80
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "abc-123", cfg.VNDB.Token)
	assert.Equal(t, 3, cfg.VNDB.MaxConcurrent)
	assert.Equal(t, 250*time.Millisecond, cfg.VNDB.Delay)
	assert.Equal(t, 5*time.Second, cfg.VNDB.Timeout)
	assert.InDelta(t, 2.5, cfg.VNDB.RateLimit, 0.001)
	assert.Equal(t, 4, cfg.VNDB.RateBurst)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "yaml", cfg.Output.Format)

	q, err := cfg.SavedQuery("top-en")
	require.NoError(t, err)
	assert.Equal(t, "vn", q.Resource)
	assert.Equal(t, []string{"title", "rating"}, q.Fields)
	assert.True(t, q.Reverse)
	assert.Equal(t, 25, q.Results)
	assert.Equal(t, "rating > 80", q.Where)

	_, err = cfg.SavedQuery("missing")
	assert.Error(t, err)
}

func TestLoadFromEnvironment(t *testing.T) {
	dir := isolate(t)
	t.Setenv("GOVNDB_VNDB_TOKEN", "from-env")
	t.Setenv("GOVNDB_VNDB_MAX_CONCURRENT", "4")
	writeConfig(t, dir, "vndb:\n  token: from-file\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.VNDB.Token)
	assert.Equal(t, 4, cfg.VNDB.MaxConcurrent)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GOVNDB_VNDB_USER_AGENT=dotenv-agent\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("GOVNDB_VNDB_USER_AGENT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-agent", cfg.VNDB.UserAgent)
}

func validConfig() Config {
	return Config{
		VNDB: VNDBConfig{
			BaseURL:       vndb.DefaultBaseURL,
			MaxConcurrent: 10,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Output:  OutputConfig{Format: "table"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:      "zero concurrency",
			mutate:    func(c *Config) { c.VNDB.MaxConcurrent = 0 },
			wantField: "vndb.max_concurrent",
		},
		{
			name:      "bad base url",
			mutate:    func(c *Config) { c.VNDB.BaseURL = "not a url" },
			wantField: "vndb.base_url",
		},
		{
			name:      "negative delay",
			mutate:    func(c *Config) { c.VNDB.Delay = -time.Second },
			wantField: "vndb.delay",
		},
		{
			name:      "unknown log level",
			mutate:    func(c *Config) { c.Logging.Level = "verbose" },
			wantField: "logging.level",
		},
		{
			name:      "unknown output format",
			mutate:    func(c *Config) { c.Output.Format = "xml" },
			wantField: "output.format",
		},
		{
			name: "saved query without resource",
			mutate: func(c *Config) {
				c.Queries = QueriesConfig{"broken": {Results: 10}}
			},
			wantField: "resource",
		},
		{
			name: "saved query with too many results",
			mutate: func(c *Config) {
				c.Queries = QueriesConfig{"big": {Resource: "vn", Results: 500}}
			},
			wantField: "results",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := validateConfig(&cfg)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var fields FieldErrors
			require.ErrorAs(t, err, &fields)
			require.NotEmpty(t, fields)
			assert.Contains(t, fields[0].Field, tt.wantField)
			assert.NotEmpty(t, fields[0].Err)
		})
	}
}

func TestValidateSavedQueryFilters(t *testing.T) {
	cfg := validConfig()
	cfg.Queries = QueriesConfig{"broken": {Resource: "release", Filters: `["id", "=",`}}

	err := validateConfig(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, vndb.ErrJSON)
	assert.Contains(t, err.Error(), "queries.broken.filters")
}
