package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"warn", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew(t *testing.T) {
	for _, dev := range []bool{false, true} {
		l, err := New(Config{Level: "debug", Development: dev})
		require.NoError(t, err)
		require.NotNil(t, l)
		l.With(String("component", "test")).Debug("built")
	}
}

func TestNewFromZap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewFromZap(zap.New(core)).With(String("batch_id", "b-1"))

	l.Debug("hidden")
	l.Info("batch processed", Int("rows", 3), Float64("fill_rate", 0.5))
	l.Error("failed", Err(errors.New("boom")))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "batch processed", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "b-1", ctx["batch_id"])
	assert.EqualValues(t, 3, ctx["rows"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Info("ignored", Bool("ok", true))
	assert.NoError(t, l.With(Any("k", 1)).Sync())
}
