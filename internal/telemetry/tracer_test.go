package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracer_ExportsGenerateSpan(t *testing.T) {
	var buf bytes.Buffer
	tr, err := NewTracer(&buf, "test")
	require.NoError(t, err)

	req := model.Request{Students: 10, Rows: 2, Cols: 5, ForbiddenPairs: []model.Pair{{1, 2}}}
	_, span := tr.StartGenerateSpan(context.Background(), "run-1", req)
	RecordResult(span, model.Result{Attempts: 4, Overflow: []int{}})
	span.End()
	require.NoError(t, tr.Shutdown(context.Background()))

	var exported map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &exported))
	assert.Equal(t, "seating.generate", exported["Name"])
	assert.Contains(t, buf.String(), "request.students")
	assert.Contains(t, buf.String(), "result.attempts")
	assert.Contains(t, buf.String(), "run-1")
}

func TestTracer_RecordError(t *testing.T) {
	var buf bytes.Buffer
	tr, err := NewTracer(&buf, "test")
	require.NoError(t, err)

	_, span := tr.Start(context.Background(), "render")
	RecordError(span, nil)
	RecordError(span, errors.New("no font"))
	span.End()
	require.NoError(t, tr.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), "no font")
	assert.Contains(t, buf.String(), `"Code":"Error"`)
}

func TestNewFileTracer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	tr, err := NewFileTracer(path, "test")
	require.NoError(t, err)

	_, span := tr.Start(context.Background(), "check")
	span.End()
	require.NoError(t, tr.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name":"check"`)
}

func TestNoopTracer(t *testing.T) {
	tr := NoopTracer()
	_, span := tr.Start(context.Background(), "noop")
	span.End()
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, tr.Shutdown(context.Background()))
}
