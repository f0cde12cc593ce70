// Package config resolves settings from defaults, a YAML file, the environment and .env.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"kosis-cpi/pkg/kosisapi"
	"kosis-cpi/pkg/utils"
)

// Environment variables read by LoadFromEnv
const (
	EnvAPIKey    = "KOSIS_API_KEY"
	EnvEndpoint  = "KOSIS_ENDPOINT"
	EnvTimeout   = "KOSIS_TIMEOUT"
	EnvOutput    = "KOSIS_OUTPUT"
	EnvConfig    = "KOSIS_CONFIG"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
)

// Config holds everything a run needs besides the command line itself
type Config struct {
	Endpoint  string          // KOSIS endpoint URL
	Timeout   time.Duration   // HTTP timeout; 0 waits indefinitely
	Output    string          // table, json or csv
	LogLevel  string          // debug, info, warn, error (default "warn")
	LogFormat string          // text or json (default "text")
	Params    kosisapi.Params // query sent to KOSIS, including the API key

	// Warnings collects non-fatal issues found while loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// fileConfig is the YAML layout of a config file
type fileConfig struct {
	Endpoint  string          `yaml:"endpoint"`
	APIKey    string          `yaml:"api-key"`
	Timeout   string          `yaml:"timeout"`
	Output    string          `yaml:"output"`
	LogLevel  string          `yaml:"log-level"`
	LogFormat string          `yaml:"log-format"`
	Query     kosisapi.Params `yaml:"query"`
}

// Default returns the built-in configuration: the CPI query with the placeholder key
func Default() *Config {
	return &Config{
		Endpoint:  kosisapi.DefaultEndpoint,
		Output:    "table",
		LogLevel:  "warn",
		LogFormat: "text",
		Params:    kosisapi.DefaultParams(),
	}
}

// LoadDotEnv loads KEY=value pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadFile overlays a YAML config file on cfg. Keys absent from the file keep their value.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	fc := fileConfig{Query: cfg.Params}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.Params = fc.Query
	if fc.Endpoint != "" {
		cfg.Endpoint = fc.Endpoint
	}
	if fc.APIKey != "" {
		cfg.Params.APIKey = fc.APIKey
	}
	if fc.Timeout != "" {
		d, err := utils.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("parse config %s: timeout: %w", path, err)
		}
		cfg.Timeout = d
	}
	if fc.Output != "" {
		cfg.Output = fc.Output
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	return nil
}

// LoadFromEnv overlays environment variables on cfg
func LoadFromEnv(cfg *Config) error {
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.Params.APIKey = v
	}
	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := utils.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv(EnvOutput); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	return nil
}

// Load builds a Config from defaults, then the config file (if path is set), then the environment.
// Flags are applied by the caller on top.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}
	cfg.Finalize()
	return cfg, nil
}

// Finalize records warnings for settings that will make the request fail
func (c *Config) Finalize() {
	c.Warnings = nil
	if c.Params.APIKey == "" || c.Params.APIKey == kosisapi.PlaceholderAPIKey {
		c.Warnings = append(c.Warnings,
			fmt.Sprintf("no KOSIS API key configured (set %s or --api-key); the API will answer with an error", EnvAPIKey))
	}
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// JSONLogs reports whether logs should use the JSON handler
func (c *Config) JSONLogs() bool {
	return strings.EqualFold(c.LogFormat, "json")
}
