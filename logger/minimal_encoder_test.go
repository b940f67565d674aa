package logger

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	encoder := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		LoggerName: "generate",
		Message:    "Generated accessors",
	}

	fields := []zapcore.Field{
		zap.String(FieldFile, "Strings.resx"),
		zap.Int(FieldAccessors, 12),
		zap.Int(FieldUnresolved, 2),
		zap.Bool("designer_written", false),
		zap.Strings("keys", []string{"A.B", "A_B"}),
	}

	buf, err := encoder.EncodeEntry(entry, fields)
	require.NoError(t, err)
	out := stripANSI(buf.String())

	assert.True(t, strings.HasPrefix(out, "15:04:05"))
	assert.Contains(t, out, "generate")
	assert.Contains(t, out, "Generated accessors")
	assert.Contains(t, out, "file=Strings.resx")
	assert.Contains(t, out, "accessors=12")
	assert.Contains(t, out, "unresolved=2")
	assert.Contains(t, out, "designer_written=false")
	assert.Contains(t, out, "keys=")
	assert.NotContains(t, out, "INFO", "info level is implicit")
}

func TestMinimalEncoderKeepsWithFields(t *testing.T) {
	encoder := newMinimalEncoder()
	zap.String(FieldRunID, "run-1").AddTo(encoder)

	clone := encoder.Clone()
	buf, err := clone.EncodeEntry(zapcore.Entry{
		Level:   zapcore.WarnLevel,
		Time:    time.Now(),
		Message: "Resource skipped",
	}, []zapcore.Field{zap.String(FieldKey, "$this")})
	require.NoError(t, err)
	out := stripANSI(buf.String())

	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "run_id=run-1")
	assert.Contains(t, out, "key=$this")
}

func TestFormatFieldsSorted(t *testing.T) {
	out := stripANSI(formatFields(map[string]interface{}{"b": 2, "a": 1}))
	assert.Equal(t, "a=1 b=2", out)
}
