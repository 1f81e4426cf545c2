package config

import (
	"os"
	"testing"
	"time"

	"github.com/WebQx/webqx-sub005/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpFile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func TestLoad_EnvSubstitution(t *testing.T) {
	os.Setenv("TEST_WEBQX_PORT", "9090")
	defer os.Unsetenv("TEST_WEBQX_PORT")

	path := writeConfig(t, `
server:
  port: ${TEST_WEBQX_PORT}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
}

func TestLoad_DefaultsForAbsentKeys(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Integration.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want default 3", cfg.Integration.MaxAttempts)
	}
	if cfg.Integration.BaseDelay != 1*time.Second {
		t.Errorf("BaseDelay = %v, want default 1s", cfg.Integration.BaseDelay)
	}
	if !cfg.Sync.AdaptiveEnabled {
		t.Error("AdaptiveEnabled should default to true")
	}
	if got := cfg.Sync.BaseIntervals[string(domain.CriticalityCritical)]; got != 300_000 {
		t.Errorf("critical base interval = %d, want default 300000", got)
	}
}

func TestLoad_CriticalityOverrides(t *testing.T) {
	path := writeConfig(t, `
sync:
  criticality:
    vitals: critical
    billing: non_essential
    all: default
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Sync.Criticality["vitals"] != domain.CriticalityCritical {
		t.Errorf("vitals = %s, want critical", cfg.Sync.Criticality["vitals"])
	}
	if cfg.Sync.Criticality["billing"] != domain.CriticalityNonEssential {
		t.Errorf("billing = %s, want non_essential", cfg.Sync.Criticality["billing"])
	}
}

func TestLoad_RejectsInvertedBounds(t *testing.T) {
	path := writeConfig(t, `
sync:
  min_interval_ms: 60000
  max_interval_ms: 1000
`)

	if _, err := Load(path); err == nil {
		t.Error("expected error for min > max")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
