package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewSetsGlobals(t *testing.T) {
	l, err := New(Config{Level: "debug"})
	require.NoError(t, err)

	assert.Same(t, l, InfoLogger)
	assert.Same(t, l, FatalLogger)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	assert.NotPanics(t, func() { Info("cycle %d", 1) })
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestHelpersWithoutInit(t *testing.T) {
	oldInfo, oldFatal := InfoLogger, FatalLogger
	InfoLogger, FatalLogger = nil, nil
	defer func() { InfoLogger, FatalLogger = oldInfo, oldFatal }()

	assert.NotPanics(t, func() {
		Info("cycle %d", 1)
		Warn("warn %s", "x")
		Error("tx panic: %v", "boom")
	})
}
