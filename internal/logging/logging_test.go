package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAppLogger_DefaultGoesToStderr(t *testing.T) {
	t.Setenv("DEBUG", "")

	logger := NewAppLogger()

	if logger.debug {
		t.Error("debug should be off without DEBUG")
	}

	// Must not panic on any level.
	logger.Info("info")
	logger.Warn("warn", "key", "value")
	logger.Error("error")
	logger.Debug("suppressed")
}

func TestNewAppLogger_DebugWritesToFile(t *testing.T) {
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() { _ = os.Chdir(origDir) }()

	t.Setenv("DEBUG", "1")

	logger := NewAppLogger()
	logger.Debug("debug message", "key", "value")

	data, err := os.ReadFile(filepath.Join(tmpDir, "specsmith.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "debug message") {
		t.Errorf("log file missing debug line:\n%s", data)
	}
}

func TestGetDefault_ReturnsSameInstance(t *testing.T) {
	a := GetDefault()
	b := GetDefault()

	if a == nil {
		t.Fatal("GetDefault returned nil")
	}
	if a != b {
		t.Error("GetDefault should return the shared instance")
	}
}
