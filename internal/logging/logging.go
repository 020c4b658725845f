package logging

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger. format "json" gives the production encoder, anything
// else the human-readable development one.
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if format != "json" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// RedactedText replaces credentials in logged values.
const RedactedText = "[REDACTED]"

var (
	passwordPattern   = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)
	connStringPattern = regexp.MustCompile(`://[^:/]+:[^@]+@`)
)

// SanitizeDSN removes credentials from a connection string before it is logged.
func SanitizeDSN(dsn string) string {
	sanitized := passwordPattern.ReplaceAllString(dsn, "${1}="+RedactedText)
	return connStringPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@")
}
