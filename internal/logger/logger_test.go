package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{
		Debug:     false,
		ConfigDir: configDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Dir(LogPath(configDir))
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetLevel() != log.WarnLevel {
		t.Errorf("default level = %v, want warn", Logger.GetLevel())
	}

	Warn("Test warning message", "key", "value")
}

func TestInitLevelOverride(t *testing.T) {
	err := Init(Config{ConfigDir: t.TempDir(), Level: "info"})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if Logger.GetLevel() != log.InfoLevel {
		t.Errorf("level = %v, want info", Logger.GetLevel())
	}

	// Unknown levels keep the default
	if err := Init(Config{ConfigDir: t.TempDir(), Level: "loud"}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if Logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn for unknown override", Logger.GetLevel())
	}
}

func TestInitWriterCapturesOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, log.DebugLevel)
	t.Cleanup(func() { Logger = nil })

	Info("activity added", "day", "saturday")
	out := buf.String()
	if !strings.Contains(out, "activity added") || !strings.Contains(out, "day=saturday") {
		t.Errorf("log output = %q, want message and key-value pair", out)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
