package config

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "boolsearch"

// NewLogger: console - цветной вывод для локальной отладки, иначе JSON без сэмплинга.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level := parseLogLevel(cfg.Level)

	var config zap.Config
	if parseLogFormat(cfg.Format, level) == formatConsole {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.Sampling = nil
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.CallerKey = "caller"
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	config.InitialFields = map[string]interface{}{"service": serviceName}

	return config.Build()
}

const (
	formatJSON    = "json"
	formatConsole = "console"
)

// parseLogFormat: без явного LOG_FORMAT debug пишет в консольном виде.
func parseLogFormat(format string, level zapcore.Level) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatJSON:
		return formatJSON
	case formatConsole, "text":
		return formatConsole
	}
	if level == zapcore.DebugLevel {
		return formatConsole
	}
	return formatJSON
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
