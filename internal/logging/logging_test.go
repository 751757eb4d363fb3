package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)

	level, err = ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	prod := Config(zapcore.InfoLevel, false)
	assert.Equal(t, "json", prod.Encoding)
	assert.Equal(t, []string{"stderr"}, prod.OutputPaths)

	dev := Config(zapcore.DebugLevel, true)
	assert.Equal(t, "console", dev.Encoding)
	assert.True(t, dev.Level.Enabled(zapcore.DebugLevel))
}

func TestNew(t *testing.T) {
	logger, err := New("error", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))

	_, err = New("nope", true)
	assert.Error(t, err)
}
