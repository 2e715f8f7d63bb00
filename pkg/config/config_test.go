package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.AccumulatorShards != 64 {
		t.Errorf("AccumulatorShards = %d, want 64", cfg.Engine.AccumulatorShards)
	}
	if cfg.Requests.Window != 1440 {
		t.Errorf("Window = %d, want 1440", cfg.Requests.Window)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics should be disabled by default")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
engine:
  stopWords: [a, an, the]
  workers: 4
  accumulatorShards: 8
output:
  pageSize: 3
logging:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := []string{"a", "an", "the"}; !reflect.DeepEqual(cfg.Engine.StopWords, want) {
		t.Errorf("StopWords = %v, want %v", cfg.Engine.StopWords, want)
	}
	if cfg.Engine.Workers != 4 || cfg.Engine.AccumulatorShards != 8 {
		t.Errorf("engine = %+v", cfg.Engine)
	}
	if cfg.Output.PageSize != 3 {
		t.Errorf("PageSize = %d, want 3", cfg.Output.PageSize)
	}
	if cfg.Requests.Window != 1440 {
		t.Errorf("Window default lost: %d", cfg.Requests.Window)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Logging.Format)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SS_ENGINE_STOP_WORDS", "of to")
	t.Setenv("SS_ENGINE_WORKERS", "2")
	t.Setenv("SS_METRICS_ENABLED", "true")
	t.Setenv("SS_METRICS_PORT", "9191")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := []string{"of", "to"}; !reflect.DeepEqual(cfg.Engine.StopWords, want) {
		t.Errorf("StopWords = %v, want %v", cfg.Engine.StopWords, want)
	}
	if cfg.Engine.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Engine.Workers)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Port != 9191 {
		t.Errorf("metrics = %+v", cfg.Metrics)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative workers", "engine:\n  workers: -1\n"},
		{"zero shards", "engine:\n  accumulatorShards: 0\n"},
		{"zero window", "requests:\n  window: 0\n"},
		{"zero page size", "output:\n  pageSize: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
