package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	VNDB    VNDBConfig    `mapstructure:"vndb"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Queries QueriesConfig `mapstructure:"queries" validate:"dive"`
}

// VNDBConfig holds API connection and pacing settings
type VNDBConfig struct {
	Token         string        `mapstructure:"token"`
	BaseURL       string        `mapstructure:"base_url" validate:"required,url"`
	MaxConcurrent int           `mapstructure:"max_concurrent" validate:"gte=1,lte=100"`
	Delay         time.Duration `mapstructure:"delay" validate:"gte=0"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gte=0"`
	UserAgent     string        `mapstructure:"user_agent"`
	// RateLimit is in requests per second; zero disables the token bucket
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`
	RateBurst int     `mapstructure:"rate_burst" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	Color  bool   `mapstructure:"color"`
}

// OutputConfig controls how command results are printed
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=table json yaml"`
}

// QueriesConfig maps a name to a saved query
type QueriesConfig map[string]SavedQuery

// SavedQuery is a reusable query definition run with "query --saved <name>"
type SavedQuery struct {
	Resource string   `mapstructure:"resource" validate:"required,oneof=character c producer p release r staff s tag g trait i vn v"`
	Filters  string   `mapstructure:"filters"`
	Fields   []string `mapstructure:"fields"`
	Sort     string   `mapstructure:"sort"`
	Reverse  bool     `mapstructure:"reverse"`
	Results  int      `mapstructure:"results" validate:"gte=0,lte=100"`
	Where    string   `mapstructure:"where"`
}
