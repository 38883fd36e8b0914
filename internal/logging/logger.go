package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "PROFILE_CLI_LOG_LEVEL"

// LogFileEnvVar names the file log output is appended to. The terminal UI
// owns stdout, so when unset logs go to stderr.
const LogFileEnvVar = "PROFILE_CLI_LOG_FILE"

// Initialize creates a new logger with the specified level and output path.
// If level is empty, it checks PROFILE_CLI_LOG_LEVEL.
// If neither is set, logging is disabled (silent mode).
// If output is empty, it checks PROFILE_CLI_LOG_FILE and falls back to stderr.
func Initialize(level, output string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	if output == "" {
		output = os.Getenv(LogFileEnvVar)
	}
	if output == "" {
		output = "stderr"
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	// Colors only make sense on a terminal
	if output == "stderr" || output == "stdout" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built

	return nil
}

// InitializeFromEnv initializes the logger from PROFILE_CLI_LOG_LEVEL and
// PROFILE_CLI_LOG_FILE. CLI commands use this so they stay silent by default.
func InitializeFromEnv() error {
	return Initialize("", "")
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		return zapcore.InfoLevel
	}
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Silent until initialized, so library code never writes into the TUI
		logger = zap.NewNop()
	}
	return logger
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogHTTPRequest logs an outgoing API request
func LogHTTPRequest(method, url string, attempt int) {
	Debug("API request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("attempt", attempt),
	)
}

// LogHTTPResponse logs an API response
func LogHTTPResponse(method, url string, statusCode int, size int) {
	Info("API response",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status_code", statusCode),
		zap.Int("length", size),
	)
}

// LogFieldEvent logs a form interaction (edit, focus, blur).
// Values are never logged; only their length.
func LogFieldEvent(event, field string, valueLen int) {
	Debug("Form event",
		zap.String("event", event),
		zap.String("field", field),
		zap.Int("value_length", valueLen),
	)
}

// LogSubmission logs the outcome of a submit attempt
func LogSubmission(attempt int, result string, message string) {
	fields := []zap.Field{
		zap.Int("attempt", attempt),
		zap.String("result", result),
	}
	if message != "" {
		fields = append(fields, zap.String("message", message))
	}
	Info("Profile submission", fields...)
}

// MaskIIN hides all but the last four characters of an identification
// number for log output.
func MaskIIN(iin string) string {
	runes := []rune(iin)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
