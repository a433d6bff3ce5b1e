package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLogger(buf *bytes.Buffer) *Logger {
	l := New(buf, false)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC) }
	return l
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf).WithLevel(LevelWarn)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	assert.Equal(t, "[03:04:05.006 WARN] shown 3\n[03:04:05.006 ERROR] shown 4\n", buf.String())
}

func TestLogger_Named(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf).Named("phrases").Named("loader")

	l.Info("loaded %d phrases", 3)

	assert.Equal(t, "[03:04:05.006 INFO] phrases.loader: loaded 3 phrases\n", buf.String())
}

func TestLogger_NoneSilencesEverything(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)
	require.NoError(t, l.SetLevel("off"))

	l.Error("nothing")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"", LevelInfo},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"none", LevelNone},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLogger_SetLevelRejectsUnknown(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf).WithLevel(LevelError)

	assert.Error(t, l.SetLevel("verbose"))
	assert.Equal(t, LevelError, l.Level())
}
