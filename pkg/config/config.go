// Package config provides configuration structures and loading logic for
// execmeter hosts. Configuration is read once at startup; the
// slow-execution threshold is treated as constant for the process
// lifetime.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/execmeter/execmeter/pkg/measure"
)

// DefaultSlowExecutionThresholdMs is applied when no threshold is
// configured.
const DefaultSlowExecutionThresholdMs = 5000

// Config holds the global configuration for an execmeter host.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds configuration for the demo HTTP server.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// MetricsConfig holds instrumentation configuration.
type MetricsConfig struct {
	SlowExecutionThresholdMs int `yaml:"slow_execution_threshold_ms"`
}

// LoggingConfig holds configuration for logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads configuration from a file and applies environment variable
// overrides. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Address: ":8080",
		},
		Metrics: MetricsConfig{
			SlowExecutionThresholdMs: DefaultSlowExecutionThresholdMs,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("EXECMETER_ADDR"); val != "" {
		cfg.Server.Address = val
	}
	if val := os.Getenv("EXECMETER_SLOW_THRESHOLD_MS"); val != "" {
		if ms, err := strconv.Atoi(val); err == nil {
			cfg.Metrics.SlowExecutionThresholdMs = ms
		}
	}
	if val := os.Getenv("EXECMETER_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("EXECMETER_LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Metrics.SlowExecutionThresholdMs <= 0 {
		return fmt.Errorf("metrics.slow_execution_threshold_ms must be positive, got %d",
			c.Metrics.SlowExecutionThresholdMs)
	}
	if _, err := measure.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}
	return nil
}

// SlowExecutionThreshold returns the configured threshold as a duration.
func (c *Config) SlowExecutionThreshold() time.Duration {
	return time.Duration(c.Metrics.SlowExecutionThresholdMs) * time.Millisecond
}
