package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load with empty path: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("expected default address :8080, got %s", cfg.Server.Address)
	}
	if cfg.Metrics.SlowExecutionThresholdMs != DefaultSlowExecutionThresholdMs {
		t.Errorf("expected default threshold %d, got %d",
			DefaultSlowExecutionThresholdMs, cfg.Metrics.SlowExecutionThresholdMs)
	}
	if cfg.SlowExecutionThreshold() != 5000*time.Millisecond {
		t.Errorf("expected 5s threshold, got %v", cfg.SlowExecutionThreshold())
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoad_FromFile(t *testing.T) {
	configContent := `
server:
  address: ":9090"

metrics:
  slow_execution_threshold_ms: 250

logging:
  level: "debug"
  format: "text"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Address != ":9090" {
		t.Errorf("expected address :9090, got %s", cfg.Server.Address)
	}
	if cfg.Metrics.SlowExecutionThresholdMs != 250 {
		t.Errorf("expected threshold 250, got %d", cfg.Metrics.SlowExecutionThresholdMs)
	}
	if cfg.SlowExecutionThreshold() != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.SlowExecutionThreshold())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EXECMETER_ADDR", ":7070")
	t.Setenv("EXECMETER_SLOW_THRESHOLD_MS", "100")
	t.Setenv("EXECMETER_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Address != ":7070" {
		t.Errorf("env address override not applied: %s", cfg.Server.Address)
	}
	if cfg.Metrics.SlowExecutionThresholdMs != 100 {
		t.Errorf("env threshold override not applied: %d", cfg.Metrics.SlowExecutionThresholdMs)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("env level override not applied: %s", cfg.Logging.Level)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"non-positive threshold",
			"metrics:\n  slow_execution_threshold_ms: 0\n",
		},
		{
			"bad log level",
			"logging:\n  level: verbose\n",
		},
		{
			"bad log format",
			"logging:\n  format: xml\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write config: %v", err)
			}

			if _, err := Load(configPath); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
