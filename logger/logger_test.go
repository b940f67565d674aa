package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{10, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(LevelName(tt.verbosity), func(t *testing.T) {
			assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity))
		})
	}
}

func TestShouldLogTrace(t *testing.T) {
	assert.False(t, ShouldLogTrace(VerbosityDebug))
	assert.True(t, ShouldLogTrace(VerbosityTrace))
	assert.True(t, ShouldLogTrace(VerbosityTrace+1))
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Info (-v)", LevelName(1))
	assert.Equal(t, "Trace (-vvv+)", LevelName(7))
	assert.Equal(t, "Unknown", LevelName(-3))
}

func TestInitialize(t *testing.T) {
	t.Cleanup(func() { _ = Initialize(false, VerbosityUser) })

	require.NoError(t, Initialize(true, VerbosityDebug))
	assert.True(t, JSONOutput)
	assert.NotNil(t, Logger)

	require.NoError(t, Initialize(false, VerbosityInfo))
	assert.False(t, JSONOutput)
	assert.True(t, Logger.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Logger.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestComponentLogger(t *testing.T) {
	require.NoError(t, Initialize(false, VerbosityUser))
	l := ComponentLogger("watch")
	assert.NotNil(t, l)
}
