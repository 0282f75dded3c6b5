// Package config loads the dashboard settings: defaults, then an optional
// YAML file, then FORECAST_* environment variables (a .env file is read
// first when present).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"energy_forecast/internal/filter"
	"energy_forecast/internal/forecast"
)

// DefaultFiles are tried in order when no path is given.
var DefaultFiles = []string{"forecast.yaml", "forecast.yml"}

type Config struct {
	ServiceURL string `yaml:"service_url"`
	Addr       string `yaml:"addr"`
	LogLevel   string `yaml:"log_level"`
	// LogFormat is "console" or "json".
	LogFormat string `yaml:"log_format"`
	PageSize  int    `yaml:"page_size"`
	// Seed for synthetic values; 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
	// RequestTimeout bounds each prediction service call; 0 disables it.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		ServiceURL: forecast.DefaultBaseURL,
		Addr:       ":8080",
		LogLevel:   "info",
		LogFormat:  "console",
		PageSize:   filter.DefaultPageSize,
	}
}

// Load reads path, or the first of DefaultFiles that exists when path is
// empty. A missing default file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", name, err)
			}
		}
		if path == "" {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv loads .env into the process environment (existing variables win)
// and applies FORECAST_* overrides to cfg.
func LoadEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return ApplyEnv(cfg)
}

// ApplyEnv overrides cfg with the FORECAST_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv("FORECAST_SERVICE_URL"); v != "" {
		cfg.ServiceURL = v
	}
	if v := os.Getenv("FORECAST_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("FORECAST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("FORECAST_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("FORECAST_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FORECAST_PAGE_SIZE: %w", err)
		}
		cfg.PageSize = n
	}
	if v := os.Getenv("FORECAST_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("FORECAST_SEED: %w", err)
		}
		cfg.Seed = n
	}
	if v := os.Getenv("FORECAST_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FORECAST_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ServiceURL) == "" {
		return errors.New("service_url is required")
	}
	if !filter.ValidPageSize(c.PageSize) {
		return fmt.Errorf("page_size %d is not one of %v", c.PageSize, filter.PageSizes)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("log_format %q must be console or json", c.LogFormat)
	}
	if c.RequestTimeout < 0 {
		return errors.New("request_timeout must not be negative")
	}
	return nil
}
