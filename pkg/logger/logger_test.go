package logger

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestNewLogger(t *testing.T) {
	l := NewLogger("", "")
	if l == nil {
		t.Fatal("Expected logger to be created, got nil")
	}

	// Logging methods must not panic.
	l.Info("Test info message", "TEST")
	l.Warn("Test warning message", "TEST")
	l.Debug("Test debug message", "TEST")
	l.System("Test system message", "TEST")
	l.Success("Test success message", "TEST")

	l.Close()
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelCritical, "CRITICAL"},
		{LevelError, "ERROR"},
		{LevelWarn, "WARN"},
		{LevelSuccess, "SUCCESS"},
		{LevelInfo, "INFO"},
		{LevelDebug, "DEBUG"},
		{LevelSystem, "SYSTEM"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLogFileCreation(t *testing.T) {
	logsDir := filepath.Join(".", "logs")
	os.RemoveAll(logsDir)

	l := NewLogger("", "")
	defer l.Close()

	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		t.Error("Expected logs directory to be created")
	}
	if _, err := os.Stat(filepath.Join(logsDir, "combined.log")); os.IsNotExist(err) {
		t.Error("Expected combined.log to be created")
	}
	if _, err := os.Stat(filepath.Join(logsDir, "error.log")); os.IsNotExist(err) {
		t.Error("Expected error.log to be created")
	}
}

func TestGlobalLoggerInit(t *testing.T) {
	logger = nil
	once = sync.Once{}

	l := Init("", "")
	if l == nil {
		t.Fatal("Expected Init to return a logger")
	}

	if l2 := Init("different", "different"); l != l2 {
		t.Error("Expected Init to return the same logger on subsequent calls")
	}
	if l3 := Get(); l != l3 {
		t.Error("Expected Get to return the same logger")
	}

	l.Close()
}
