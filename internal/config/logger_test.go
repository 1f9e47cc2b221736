package config

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"invalid", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := parseLogLevel(tt.level); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestParseLogFormat(t *testing.T) {
	tests := []struct {
		format string
		level  zapcore.Level
		want   string
	}{
		{"", zapcore.InfoLevel, formatJSON},
		{"", zapcore.DebugLevel, formatConsole},
		{"json", zapcore.DebugLevel, formatJSON},
		{"Console", zapcore.InfoLevel, formatConsole},
		{"text", zapcore.WarnLevel, formatConsole},
		{"xml", zapcore.InfoLevel, formatJSON},
	}

	for _, tt := range tests {
		if got := parseLogFormat(tt.format, tt.level); got != tt.want {
			t.Errorf("parseLogFormat(%q, %v) = %v, want %v", tt.format, tt.level, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name string
		cfg  LogConfig
	}{
		{"debug console", LogConfig{Level: "debug"}},
		{"info json", LogConfig{Level: "info"}},
		{"warn console", LogConfig{Level: "warn", Format: "console"}},
		{"debug json", LogConfig{Level: "debug", Format: "json"}},
		{"defaults", LogConfig{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}
			if logger == nil {
				t.Fatal("NewLogger() returned nil logger")
			}
			if !logger.Core().Enabled(parseLogLevel(tt.cfg.Level)) {
				t.Errorf("logger should be enabled at %q", tt.cfg.Level)
			}
			logger.Sync()
		})
	}
}
