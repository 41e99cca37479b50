// Package logging builds the process-wide zap logger from configuration.
package logging

import (
	"fmt"

	"xrplay/internal/config"

	"go.uber.org/zap"
)

// New builds a logger for cfg and installs it as the zap global, which is
// what scripts log through. The returned func restores the previous global.
func New(cfg config.LoggingConfig) (*zap.Logger, func(), error) {
	level, err := cfg.ParseLevel()
	if err != nil {
		return nil, nil, err
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	undo := zap.ReplaceGlobals(logger)
	return logger, undo, nil
}
