package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/s0up4200/govndb/config"
	"github.com/s0up4200/govndb/vndb"
)

var (
	cfgFile      string
	outputFormat string
	debug        bool

	cfg    *config.Config
	logger zerolog.Logger
	client *vndb.Client
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "govndb",
	Short: "Query the VNDB API from the command line",
	Long: `govndb is a CLI for the VNDB "kana" API. It looks up visual novels,
releases, characters, producers, staff, tags, traits and users, and can
filter the results locally with expressions.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.govndb/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json or yaml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every API request")
}

// initializeApp loads the configuration and creates the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("output") {
		cfg.Output.Format = outputFormat
	}
	if !isOutputFormat(cfg.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be table, json or yaml)", cfg.Output.Format)
	}
	if debug {
		cfg.Logging.Level = "debug"
	}

	logger = setupLogger(cfg.Logging)
	client = newClient(cfg.VNDB, logger)

	logger.Debug().
		Str("base_url", cfg.VNDB.BaseURL).
		Int("max_concurrent", cfg.VNDB.MaxConcurrent).
		Bool("token", client.HasToken()).
		Msg("VNDB client ready")

	return nil
}

// newClient maps the vndb config section onto client options
func newClient(c config.VNDBConfig, logger zerolog.Logger) *vndb.Client {
	opts := []vndb.Option{
		vndb.WithBaseURL(c.BaseURL),
		vndb.WithMaxConcurrentRequests(c.MaxConcurrent),
		vndb.WithDelay(c.Delay),
		vndb.WithTimeout(c.Timeout),
		vndb.WithLogger(logger),
	}
	if c.Token != "" {
		opts = append(opts, vndb.WithToken(c.Token))
	}
	if c.UserAgent != "" {
		opts = append(opts, vndb.WithUserAgent(c.UserAgent))
	}
	if c.RateLimit > 0 {
		opts = append(opts, vndb.WithRateLimit(rate.Limit(c.RateLimit), c.RateBurst))
	}
	return vndb.New(opts...)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
