package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupWithWriter(&buf, slog.LevelInfo, true)

	logger.Info("phase complete", "ended", "work")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "phase complete" {
		t.Errorf("msg = %v, want %q", entry["msg"], "phase complete")
	}
	if entry["ended"] != "work" {
		t.Errorf("ended = %v, want %q", entry["ended"], "work")
	}
}

func TestSetupWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupWithWriter(&buf, Level(false), false)

	logger.Debug("hidden")
	logger.Info("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Error("debug output should be filtered at info level")
	}
	if !strings.Contains(output, "shown") {
		t.Error("info output missing")
	}
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinamodoro.log")

	result := Setup(path, Level(true), DefaultRotation())
	result.Logger.Debug("tick", "remaining", 42)
	if err := result.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if result.FilePath != path {
		t.Errorf("FilePath = %q, want %q", result.FilePath, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"remaining":42`) {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestSetup_Stderr(t *testing.T) {
	result := Setup("", Level(false), DefaultRotation())
	if result.LogFile != nil {
		t.Error("stderr logger should not own a file")
	}
	if err := result.Close(); err != nil {
		t.Errorf("Close = %v, want nil", err)
	}
}
