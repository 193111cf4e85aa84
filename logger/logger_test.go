package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"", InfoLevel},
		{" warn ", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"fatal", FatalLevel},
	}
	for _, tt := range tests {
		lv, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, lv, tt.in)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "debug", DebugLevel.String())
	assert.Equal(t, "warn", WarnLevel.String())
	assert.Equal(t, "level(9)", Level(9).String())
}

func TestSlogLogger_JSON(t *testing.T) {
	t.Setenv("ENV", "")

	var buf bytes.Buffer
	l := NewSlogWriter(&buf, InfoLevel, false)

	l.Debug("hidden")
	assert.Zero(t, buf.Len(), "debug must be filtered at info level")

	l.With("port", "/dev/ttyUSB0").Info("command", "protocol", "Pelco-D", "addr", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "command", rec["msg"])
	assert.Equal(t, "/dev/ttyUSB0", rec["port"])
	assert.Equal(t, "Pelco-D", rec["protocol"])
	assert.Contains(t, rec, "ts")
}

func TestSlogLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogWriter(&buf, InfoLevel, false)
	child := l.With("k", "v")

	assert.Equal(t, InfoLevel, l.Level())

	l.SetLevel(DebugLevel)
	assert.Equal(t, DebugLevel, l.Level())
	assert.Equal(t, DebugLevel, child.Level(), "children share the parent's level")

	child.Debug("visible")
	assert.Positive(t, buf.Len())
}

func TestMockLogger_WithReturnsSelf(t *testing.T) {
	m := NewMockLogger()
	m.On("Info", "hello", mock.Anything).Return()

	m.With("k", "v").Info("hello")
	m.AssertExpectations(t)
}
