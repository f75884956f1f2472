package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(" warn"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("chatty"))
}

func TestNopLoggerWith(t *testing.T) {
	l := NewNopLogger().With("component", "test")
	l.Info("discarded", "key", "value")
	assert.NotNil(t, l)
}
