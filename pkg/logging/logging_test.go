package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, lvl)

	lvl, err = ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter("info", &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("object written", zap.String("hash", "abc"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "object written")
	assert.Contains(t, out, "abc")
}

func TestResolveLevel(t *testing.T) {
	t.Setenv(EnvLevel, "")
	assert.Equal(t, DefaultLevel, ResolveLevel("", ""))
	assert.Equal(t, "error", ResolveLevel("", "error"))
	assert.Equal(t, "debug", ResolveLevel("debug", "error"))

	t.Setenv(EnvLevel, "info")
	assert.Equal(t, "info", ResolveLevel("", "error"))
	assert.Equal(t, "debug", ResolveLevel("debug", "error"))
}
