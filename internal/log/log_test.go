package log

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"firestige.xyz/fieldpack/internal/config"
)

func TestInit(t *testing.T) {
	cfg := config.LogConfig{Level: "debug", Format: "json"}
	if err := Init(cfg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %v", logrus.GetLevel())
	}
}

func TestInitWithFile(t *testing.T) {
	cfg := config.LogConfig{
		Level:  "info",
		Format: "text",
		File: config.FileOutputConfig{
			Enabled: true,
			Path:    filepath.Join(t.TempDir(), "fieldpack.log"),
		},
	}
	if err := Init(cfg); err != nil {
		t.Fatalf("Init with file output failed: %v", err)
	}
}

func TestInitRejectsBadInput(t *testing.T) {
	if err := Init(config.LogConfig{Level: "verbose", Format: "text"}); err == nil {
		t.Error("Expected error for unknown level")
	}
	if err := Init(config.LogConfig{Level: "info", Format: "xml"}); err == nil {
		t.Error("Expected error for unknown format")
	}
	if err := Init(config.LogConfig{
		Level: "info", Format: "text",
		File: config.FileOutputConfig{Enabled: true},
	}); err == nil {
		t.Error("Expected error for file output without path")
	}
}
