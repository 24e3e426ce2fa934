package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := writeConfig(t, "per_domain_delay: 2s\nmax_text: 9000\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.PerDomainDelay != 2*time.Second {
		t.Errorf("PerDomainDelay = %v", cfg.PerDomainDelay)
	}
	if cfg.MaxText != 9000 {
		t.Errorf("MaxText = %d", cfg.MaxText)
	}
	// Everything else stays at its default.
	if cfg.FetchTimeout != DefaultFetchTimeout || cfg.Model != DefaultModel {
		t.Errorf("unset fields changed: %+v", cfg)
	}
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := writeConfig(t, "fetch_timeout: soon\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
