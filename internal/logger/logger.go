// Package logger builds the zap loggers used by the CLI and the plugin
// manager. Library code never logs through a global; it takes a *zap.Logger
// and defaults to Nop.
package logger

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the level and the encoding.
type Config struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// ParseLevel accepts zap level names case-insensitively; empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return zapcore.InfoLevel, nil
	}

	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return lvl, errors.WithHint(
			errors.Wrapf(err, "log level"),
			"use one of debug, info, warn, error",
		)
	}

	return lvl, nil
}

// New returns a JSON production logger or a console logger writing to stderr.
func New(cfg Config) (*zap.Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	if cfg.JSON {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(lvl)
		zc.OutputPaths = []string{"stderr"}

		return zc.Build()
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = ""
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(ec),
		zapcore.AddSync(os.Stderr),
		lvl,
	)), nil
}

// Nop discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
