package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(true, "")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	prod, err := NewLogger(false, "warn")
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, prod.Core().Enabled(zapcore.WarnLevel))

	_, err = NewLogger(false, "loud")
	assert.Error(t, err)
}

func TestMustNewLoggerPanics(t *testing.T) {
	assert.Panics(t, func() { MustNewLogger(false, "loud") })
	assert.NotPanics(t, func() { MustNewLogger(false, "info") })
}
