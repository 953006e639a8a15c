package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
fieldpack:
  log:
    level: "debug"
    format: "json"
  dump:
    byte_order: "little"
    format: "yaml"
    options:
      rtp:
        csrc_count: 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected log format json, got %s", cfg.Log.Format)
	}
	if cfg.Dump.ByteOrder != "little" {
		t.Errorf("Expected byte_order little, got %s", cfg.Dump.ByteOrder)
	}
	if cfg.Dump.Format != "yaml" {
		t.Errorf("Expected dump format yaml, got %s", cfg.Dump.Format)
	}
	opts := cfg.LayoutOptions("rtp")
	if opts["csrc_count"] != 2 {
		t.Errorf("Expected rtp csrc_count 2, got %v", opts["csrc_count"])
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
fieldpack:
  log:
    level: "warn"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Expected default log format text, got %s", cfg.Log.Format)
	}
	if cfg.Dump.ByteOrder != "big" {
		t.Errorf("Expected default byte_order big, got %s", cfg.Dump.ByteOrder)
	}
	if cfg.Log.File.Rotation.MaxSizeMB != 100 {
		t.Errorf("Expected default max_size_mb 100, got %d", cfg.Log.File.Rotation.MaxSizeMB)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"bad byte order": `
fieldpack:
  dump:
    byte_order: "middle"
`,
		"bad log format": `
fieldpack:
  log:
    format: "xml"
`,
		"file output without path": `
fieldpack:
  log:
    file:
      enabled: true
`,
	}
	for name, content := range cases {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Errorf("%s: expected validation error, got nil", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config does not validate: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected default level info, got %s", cfg.Log.Level)
	}
	if opts := cfg.LayoutOptions("gps128"); opts == nil {
		t.Error("LayoutOptions must never return nil")
	}
}
