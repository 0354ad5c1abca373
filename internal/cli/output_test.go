package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/piwi3910/SeatShuffle/internal/engine"
	"github.com/piwi3910/SeatShuffle/internal/export"
	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))
	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitFailure, "inner", errors.New("cause")))
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
}

func TestExitError_Message(t *testing.T) {
	assert.Equal(t, "bad", NewExitError(2, "bad").Error())

	cause := errors.New("cause")
	err := WrapExitError(1, "failed", cause)
	assert.Equal(t, "failed: cause", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		exit int
	}{
		{"exhausted", &engine.PlacementError{Code: engine.CodePlacementExhausted}, ErrCodeExhausted, ExitFailure},
		{"render", &export.RenderError{Format: "pdf", Err: errors.New("x")}, ErrCodeRender, ExitFailure},
		{"invalid", &model.ValidationError{}, ErrCodeInvalidInput, ExitCommandError},
		{"wrapped invalid", fmt.Errorf("%w: rows", model.ErrInvalidInput), ErrCodeInvalidInput, ExitCommandError},
		{"other", errors.New("open: no such file"), ErrCodeCommand, ExitCommandError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, exit := classify(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.exit, exit)
		})
	}
}

func TestOutputFormatter_SuccessJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}
	require.NoError(t, f.SuccessWithRun("r1", map[string]int{"seated": 3}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "r1", resp.RunID)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_Fail(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &errOut}

	pair := model.Pair{1, 2}
	err := f.Fail(&engine.PlacementError{Code: engine.CodePlacementExhausted, Message: "stuck", Budget: 5, Pair: &pair})
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, engine.ErrPlacementExhausted)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeExhausted, resp.Error.Code)
	assert.Equal(t, "stuck", resp.Error.Message)
	assert.Zero(t, errOut.Len())

	// Already reported errors pass through untouched.
	again := f.Fail(err)
	assert.Same(t, err, again)
}

func TestOutputFormatter_TextErrorGoesToErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &out, ErrWriter: &errOut, Verbose: true}

	err := f.Fail(&model.ValidationError{Fields: []model.FieldError{{Field: "rows", Message: "must be positive"}}})
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error [INVALID_INPUT]")
	assert.Contains(t, errOut.String(), "Details:")

	f.VerboseLog("seated %d", 4)
	assert.Contains(t, errOut.String(), "seated 4")
}
