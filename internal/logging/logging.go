// Package logging builds the zap loggers used by the server, the session
// registry and the CLI. Core packages never log.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/episim/internal/config"
)

// New builds a logger from cfg. Production mode emits JSON to stderr;
// development mode uses the console encoder with caller info.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	atom, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("logging: level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = atom

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}

	return logger.With(zap.String("service", "episim")), nil
}

// Nop returns a logger that discards everything; for tests and library use.
func Nop() *zap.Logger {
	return zap.NewNop()
}
