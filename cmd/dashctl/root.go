package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdash/internal/api"
	"github.com/jonathan/jobdash/internal/config"
	"github.com/jonathan/jobdash/internal/logger"
	"github.com/jonathan/jobdash/internal/observability"
	"github.com/jonathan/jobdash/internal/views"
)

// envProduction switches the log handler to JSON.
const envProduction = "DASHCTL_ENV"

var (
	rootConfigPath string
	rootAPIURL     string
	rootJobsURL    string
	rootTimeout    time.Duration
	rootVerbose    bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	flags.StringVar(&rootAPIURL, "api-url", "", "Dashboard and resume API base URL (defaults to DASHBOARD_API_URL)")
	flags.StringVar(&rootJobsURL, "jobs-url", "", "Hiring API base URL (defaults to JOBS_API_URL)")
	flags.DurationVar(&rootTimeout, "timeout", 0, "Per-request timeout (defaults to DASHBOARD_TIMEOUT or 30s)")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
}

// runtime is what every subcommand needs, built once per invocation.
type runtime struct {
	cfg     config.Config
	log     *slog.Logger
	api     *api.Client
	jobs    *api.Client
	printer *observability.Printer
}

var rt *runtime

func setupRuntime(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override config file and environment values
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = rootAPIURL
	}
	if cmd.Flags().Changed("jobs-url") {
		cfg.JobsURL = rootJobsURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = config.Duration(rootTimeout)
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = rootVerbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Setup(logger.Options{
		JSON:    os.Getenv(envProduction) == "production",
		Verbose: cfg.Verbose,
		Output:  cmd.ErrOrStderr(),
	})

	clientOpts := api.DefaultOptions()
	clientOpts.Timeout = time.Duration(cfg.Timeout)
	clientOpts.Logger = log

	apiClient, err := api.New(cfg.APIURL, clientOpts)
	if err != nil {
		return fmt.Errorf("invalid api url: %w", err)
	}
	jobsClient, err := api.New(cfg.JobsURL, clientOpts)
	if err != nil {
		return fmt.Errorf("invalid jobs url: %w", err)
	}

	rt = &runtime{
		cfg:     cfg,
		log:     log,
		api:     apiClient,
		jobs:    jobsClient,
		printer: observability.NewPrinter(cmd.OutOrStdout()),
	}
	log.Debug("runtime ready", "api_url", cfg.APIURL, "jobs_url", cfg.JobsURL)
	return nil
}

// report prints err in a box and marks it so main does not print it again.
func (r *runtime) report(title string, err error) error {
	r.printer.PrintError(title, err)
	return &reportedError{err: err}
}

// reportedError has already been shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func (r *runtime) viewOptions() views.Options {
	return views.Options{Logger: r.log}
}

// parseIndex reads a positional list index.
func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid index %q: must be a non-negative integer", arg)
	}
	return index, nil
}
