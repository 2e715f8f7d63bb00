// Package config loads and validates application configuration from YAML files
// with environment-variable overrides. It provides typed structs for the
// engine, request statistics, output, logging and metrics subsystems.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Requests RequestsConfig `yaml:"requests"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// EngineConfig controls the search engine: its stop words and the degree of
// parallelism used by the parallel execution policy.
type EngineConfig struct {
	StopWords         []string `yaml:"stopWords"`
	Workers           int      `yaml:"workers"`
	AccumulatorShards int      `yaml:"accumulatorShards"`
}

// RequestsConfig controls the sliding window of the request statistics
// tracker, measured in requests.
type RequestsConfig struct {
	Window int `yaml:"window"`
}

// OutputConfig controls console result pagination.
type OutputConfig struct {
	PageSize int `yaml:"pageSize"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with defaults for any missing
// values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.Engine.Workers < 0 {
		return fmt.Errorf("engine.workers must not be negative, got %d", c.Engine.Workers)
	}
	if c.Engine.AccumulatorShards < 1 {
		return fmt.Errorf("engine.accumulatorShards must be positive, got %d", c.Engine.AccumulatorShards)
	}
	if c.Requests.Window < 1 {
		return fmt.Errorf("requests.window must be positive, got %d", c.Requests.Window)
	}
	if c.Output.PageSize < 1 {
		return fmt.Errorf("output.pageSize must be positive, got %d", c.Output.PageSize)
	}
	return nil
}

// defaultConfig returns a Config with defaults suitable for local use.
// Workers of zero means one worker per available CPU.
func defaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			StopWords:         []string{"and", "in", "on", "the", "with"},
			Workers:           0,
			AccumulatorShards: 64,
		},
		Requests: RequestsConfig{
			Window: 1440,
		},
		Output: OutputConfig{
			PageSize: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
	}
}

// applyEnvOverrides reads SS_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("SS_ENGINE_STOP_WORDS"); ok {
		cfg.Engine.StopWords = strings.Fields(v)
	}
	if v := os.Getenv("SS_ENGINE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.Workers = n
		}
	}
	if v := os.Getenv("SS_ENGINE_ACCUMULATOR_SHARDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.AccumulatorShards = n
		}
	}
	if v := os.Getenv("SS_REQUESTS_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Requests.Window = n
		}
	}
	if v := os.Getenv("SS_OUTPUT_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Output.PageSize = n
		}
	}
	if v := os.Getenv("SS_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SS_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SS_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("SS_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
}
