package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m), "line: %s", line)
		out = append(out, m)
	}
	return out
}

func TestNewLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(LoggingConfig{Level: "debug", Format: "json", Writer: &buf})
	require.NoError(t, err)

	l.NewComponentLogger("cli").
		WithRunID("abc123").
		WithFields(map[string]any{"students": 32}).
		WithError(errors.New("boom")).
		Info("seating generated")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "cli", lines[0]["component"])
	assert.Equal(t, "abc123", lines[0]["run_id"])
	assert.Equal(t, float64(32), lines[0]["students"])
	assert.Equal(t, "boom", lines[0]["error"])
	assert.Equal(t, "seating generated", lines[0]["message"])
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(LoggingConfig{Level: "warn", Format: "json", Writer: &buf})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warnf("shown %d", 1)
	l.Error("shown")

	assert.Len(t, decodeLines(t, &buf), 2)
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(LoggingConfig{Level: "info", Format: "console", Writer: &buf})
	require.NoError(t, err)

	l.WithField("rows", 4).Info("ready")
	assert.Contains(t, buf.String(), "ready")
	assert.Contains(t, buf.String(), "rows=4")
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seatshuffle.log")
	l, err := NewLogger(LoggingConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	l.Info("to file")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(LoggingConfig{Format: "json", Writer: &buf})
	require.NoError(t, err)

	ctx := l.WithContext(context.Background())
	assert.Same(t, l, FromContext(ctx))

	// A bare context yields a logger that swallows output.
	FromContext(context.Background()).Error("nowhere")
	assert.Zero(t, buf.Len())
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"chatty":  zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}
