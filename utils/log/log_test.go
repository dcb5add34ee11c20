package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConvertStringToLogLevel(t *testing.T) {
	level, err := ConvertStringToLogLevel("debug")
	if err != nil || level != slog.LevelDebug {
		t.Errorf("Expected DEBUG without error, got %v %v", level, err)
	}

	level, err = ConvertStringToLogLevel("WARN")
	if err != nil || level != slog.LevelWarn {
		t.Errorf("Expected WARN without error, got %v %v", level, err)
	}
}

func TestConvertStringToLogLevel_ThrowError(t *testing.T) {
	level, err := ConvertStringToLogLevel("TRACE")
	if err == nil {
		t.Error("Expected error for unknown level, got nil")
	}
	if level != slog.LevelInfo {
		t.Errorf("Expected INFO fallback, got %v", level)
	}
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewLogger(&buffer, slog.LevelWarn)

	logger.Info("no debería aparecer")
	logger.Warn("aparece")

	output := buffer.String()
	if strings.Contains(output, "no debería aparecer") {
		t.Errorf("Expected INFO to be filtered, got %q", output)
	}
	if !strings.Contains(output, "aparece") {
		t.Errorf("Expected WARN in output, got %q", output)
	}
}

func TestInitLogger_WritesFile(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	logPath := filepath.Join(t.TempDir(), "kernel.log")
	if err := InitLogger(logPath, "INFO"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	slog.Info("mensaje de prueba")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "mensaje de prueba") {
		t.Errorf("Expected message in log file, got %q", string(content))
	}
}

func TestInitLogger_ThrowError(t *testing.T) {
	err := InitLogger(filepath.Join(t.TempDir(), "no", "existe", "kernel.log"), "INFO")
	if err == nil {
		t.Error("Expected error for unwritable path, got nil")
	}
}
