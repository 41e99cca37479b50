package logging

import (
	"testing"

	"xrplay/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewInstallsGlobal(t *testing.T) {
	logger, undo, err := New(config.LoggingConfig{Level: "warn"})
	require.NoError(t, err)
	defer undo()

	assert.Same(t, logger, zap.L())
	assert.True(t, zap.L().Core().Enabled(zapcore.WarnLevel))
	assert.False(t, zap.L().Core().Enabled(zapcore.InfoLevel))
}

func TestNewDevelopment(t *testing.T) {
	logger, undo, err := New(config.LoggingConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	defer undo()

	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	before := zap.L()
	_, _, err := New(config.LoggingConfig{Level: "chatty"})
	assert.Error(t, err)
	assert.Same(t, before, zap.L())
}
