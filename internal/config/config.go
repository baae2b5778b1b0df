// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/jonathan/jobdash/internal/schemas"
)

// Environment keys read by FromEnv.
const (
	EnvAPIURL     = "DASHBOARD_API_URL"
	EnvJobsURL    = "JOBS_API_URL"
	EnvRefresh    = "DASHBOARD_REFRESH"
	EnvWindowDays = "DASHBOARD_WINDOW_DAYS"
	EnvTopN       = "DASHBOARD_TOP_N"
	EnvTimeout    = "DASHBOARD_TIMEOUT"
)

// Duration is a time.Duration that reads "5m"-style strings or plain seconds
// from JSON.
type Duration time.Duration

// UnmarshalJSON accepts "30s" or 30.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("invalid duration %s", string(data))
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Endpoints
	APIURL  string `json:"api_url,omitempty"`  // Dashboard and resume API
	JobsURL string `json:"jobs_url,omitempty"` // Hiring (jobs) API

	// Behavior
	Timeout         Duration `json:"timeout,omitempty"`          // Per-request timeout
	RefreshInterval Duration `json:"refresh_interval,omitempty"` // Dashboard auto-refresh period
	WindowDays      int      `json:"window_days,omitempty"`      // Dashboard aggregation window
	TopN            int      `json:"top_n,omitempty"`            // Number of pros/cons
	Verbose         bool     `json:"verbose,omitempty"`          // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIURL:          "http://127.0.0.1:8005",
		JobsURL:         "http://127.0.0.1:8002",
		Timeout:         Duration(30 * time.Second),
		RefreshInterval: Duration(5 * time.Minute),
		WindowDays:      30,
		TopN:            5,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := schemas.Validate(schemas.Config, data); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// FromEnv reads the configuration from the environment. Call
// godotenv.Load first to pick up a .env file. Unset keys stay zero.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIURL:  strings.TrimSpace(os.Getenv(EnvAPIURL)),
		JobsURL: strings.TrimSpace(os.Getenv(EnvJobsURL)),
	}

	var err error
	if cfg.RefreshInterval, err = envDuration(EnvRefresh); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = envDuration(EnvTimeout); err != nil {
		return nil, err
	}
	if cfg.WindowDays, err = envInt(EnvWindowDays); err != nil {
		return nil, err
	}
	if cfg.TopN, err = envInt(EnvTopN); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envDuration(key string) (Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config error: %s: %w", key, err)
	}
	return Duration(d), nil
}

func envInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config error: %s: %w", key, err)
	}
	return n, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by merging with Defaults.
func (c *Config) Validate() error {
	if err := checkURL("api_url", c.APIURL); err != nil {
		return err
	}
	if err := checkURL("jobs_url", c.JobsURL); err != nil {
		return err
	}

	// Validate numeric ranges
	if c.WindowDays < 0 {
		return fmt.Errorf("config error: 'window_days' must be non-negative")
	}
	if c.TopN < 0 {
		return fmt.Errorf("config error: 'top_n' must be non-negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config error: 'timeout' must be non-negative")
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("config error: 'refresh_interval' must be non-negative")
	}

	return nil
}

func checkURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config error: '%s' must be an http(s) URL: %q", field, raw)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Chaining file.MergeWithDefaults(env.MergeWithDefaults(Defaults())) gives
// file over env over built-in defaults; CLI flags are applied afterwards.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.JobsURL == "" {
		result.JobsURL = defaults.JobsURL
	}

	// Numeric fields: use default if zero
	if result.Timeout == 0 {
		result.Timeout = defaults.Timeout
	}
	if result.RefreshInterval == 0 {
		result.RefreshInterval = defaults.RefreshInterval
	}
	if result.WindowDays == 0 {
		result.WindowDays = defaults.WindowDays
	}
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}

	// Bool fields: an explicit true anywhere wins
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Load resolves the effective configuration from an optional file and the
// environment, on top of Defaults.
func Load(path string) (Config, error) {
	env, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	base := env.MergeWithDefaults(Defaults())

	if path == "" {
		return base, base.Validate()
	}
	file, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	if err := file.Validate(); err != nil {
		return Config{}, err
	}
	merged := file.MergeWithDefaults(base)
	return merged, merged.Validate()
}
