package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"kosis-cpi/internal/config"
	"kosis-cpi/internal/pipeline"
	"kosis-cpi/pkg/kosisapi"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stdout, os.Stderr, errorFormat(rootCmd), err)
		return 1
	}
	return 0
}

// rootOptions are the raw persistent flag values
type rootOptions struct {
	configPath string
	apiKey     string
	endpoint   string
	output     string
	timeout    time.Duration
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	var (
		opts rootOptions
		cfg  *config.Config
	)
	getConfig := func() *config.Config { return cfg }

	rootCmd := &cobra.Command{
		Use:   "kosis-cpi",
		Short: "Fetch the Korean Consumer Price Index from KOSIS",
		Long: `Retrieves the latest consumer price index series (table DT_1J22003) from the
KOSIS statistics API, keeps the 17 descriptive columns and prints them.

Settings are resolved as flag > environment > config file > default.
A .env file in the working directory is loaded first.`,
		Example: `  # Print the latest three months as a table
  KOSIS_API_KEY=... kosis-cpi

  # Same data as JSON
  kosis-cpi --api-key ... -o json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := resolveConfig(cmd, &opts)
			if err != nil {
				return err
			}
			cfg = resolved
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file (env KOSIS_CONFIG)")
	flags.StringVar(&opts.apiKey, "api-key", "", "KOSIS API key (env KOSIS_API_KEY)")
	flags.StringVar(&opts.endpoint, "endpoint", kosisapi.DefaultEndpoint, "KOSIS endpoint URL (env KOSIS_ENDPOINT)")
	flags.StringVarP(&opts.output, "output", "o", "table", "Output format (table, json, csv)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout, 0 waits indefinitely (env KOSIS_TIMEOUT)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error (env LOG_LEVEL)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format: text, json (env LOG_FORMAT)")

	rootCmd.AddCommand(newURLCmd(getConfig))
	rootCmd.AddCommand(newColumnsCmd(getConfig))
	rootCmd.AddCommand(newVersionCmd(getConfig))

	return rootCmd
}

// resolveConfig applies precedence: flag > env > config file > default
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	path := opts.configPath
	if !flags.Changed("config") {
		path = os.Getenv(config.EnvConfig)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("api-key") {
		cfg.Params.APIKey = opts.apiKey
	}
	if flags.Changed("endpoint") {
		cfg.Endpoint = opts.endpoint
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("timeout") {
		if opts.timeout < 0 {
			return nil, fmt.Errorf("--timeout must not be negative")
		}
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	cfg.Finalize()

	if _, err := pipeline.ParseFormat(cfg.Output); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runFetch executes one pipeline run against KOSIS
func runFetch(cmd *cobra.Command, cfg *config.Config) error {
	runID := uuid.New().String()
	logger := newLogger(cmd.ErrOrStderr(), cfg).With("run_id", runID)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	client := kosisapi.NewClient(cfg.Endpoint, cfg.Timeout)
	sourceURL, err := client.RequestURL(cfg.Params.Redacted())
	if err != nil {
		return err
	}

	format, err := pipeline.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	job := pipeline.Job{
		Params: cfg.Params,
		Render: pipeline.RenderOptions{
			Format: format,
			Color:  format == pipeline.FormatTable && colorEnabled(out),
		},
		SourceURL: sourceURL,
	}

	summary, err := pipeline.Run(cmd.Context(), logger, client, job, out)
	if err != nil {
		return err
	}

	logger.Debug("run summary",
		"records", summary.TotalRecords,
		"stages", len(summary.Stages),
		"duration_ms", summary.ProcessingTime.Milliseconds(),
	)
	return nil
}

// errorFormat decides how Execute reports a failure
func errorFormat(rootCmd *cobra.Command) string {
	if f := rootCmd.PersistentFlags().Lookup("output"); f != nil && f.Changed {
		return f.Value.String()
	}
	if v := os.Getenv(config.EnvOutput); v != "" {
		return v
	}
	return "table"
}

// printError writes err as JSON on stdout for -o json, otherwise as text on stderr
func printError(stdout, stderr io.Writer, output string, err error) {
	if format, _ := pipeline.ParseFormat(output); format != pipeline.FormatJSON {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return
	}

	errObj := map[string]interface{}{
		"error": err.Error(),
	}
	var statusErr *kosisapi.StatusError
	if errors.As(err, &statusErr) {
		errObj["http_status"] = statusErr.StatusCode
	}
	var apiErr *kosisapi.APIError
	if errors.As(err, &apiErr) {
		errObj["code"] = apiErr.Code
	}
	_ = printJSON(stdout, errObj)
}
