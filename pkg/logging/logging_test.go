package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "debug lowercase", input: "debug", expected: slog.LevelDebug},
		{name: "debug uppercase", input: "DEBUG", expected: slog.LevelDebug},
		{name: "debug mixed case", input: "Debug", expected: slog.LevelDebug},
		{name: "info", input: "info", expected: slog.LevelInfo},
		{name: "warn", input: "warn", expected: slog.LevelWarn},
		{name: "warning alias", input: "warning", expected: slog.LevelWarn},
		{name: "error", input: "error", expected: slog.LevelError},
		{name: "empty defaults to info", input: "", expected: slog.LevelInfo},
		{name: "whitespace defaults to info", input: "   ", expected: slog.LevelInfo},
		{name: "padded level is trimmed", input: " warn ", expected: slog.LevelWarn},
		{name: "unknown defaults to info", input: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLogLevel(tt.input)
			if got != tt.expected {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewStructuredLogger(t *testing.T) {
	logger := NewStructuredLogger("test-module", "v1.0.0", "warn")
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}

	ctx := context.Background()
	if logger.Enabled(ctx, slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !logger.Enabled(ctx, slog.LevelWarn) {
		t.Error("warn should be enabled at warn level")
	}
	if !logger.Enabled(ctx, slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestNewStructuredLoggerLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	logger := NewStructuredLogger("test-module", "v1.0.0", "")
	if logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("warn should be disabled when LOG_LEVEL=error")
	}
	if !logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled when LOG_LEVEL=error")
	}
}

func TestNewStructuredLoggerExplicitLevelWinsOverEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	logger := NewStructuredLogger("test-module", "v1.0.0", "debug")
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("explicit debug level should override LOG_LEVEL")
	}
}

func TestNewLogLogger(t *testing.T) {
	logger := NewLogLogger(slog.LevelInfo, false)
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}
}
