package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/piwi3910/SeatShuffle/internal/engine"
	"github.com/piwi3910/SeatShuffle/internal/export"
	"github.com/piwi3910/SeatShuffle/internal/model"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Placement exhausted, render failure, conflicts found
	ExitCommandError = 2 // Invalid input, unreadable files, bad flags
)

// Error codes used in JSON error responses.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeExhausted    = engine.CodePlacementExhausted
	ErrCodeRender       = "RENDERING_FAILURE"
	ErrCodeConflicts    = "CONFLICTS_FOUND"
	ErrCodeCommand      = "COMMAND_ERROR"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// classify maps a domain error to its response code and exit code.
func classify(err error) (string, int) {
	switch {
	case errors.Is(err, engine.ErrPlacementExhausted):
		return ErrCodeExhausted, ExitFailure
	case errors.Is(err, export.ErrRenderingFailure):
		return ErrCodeRender, ExitFailure
	case errors.Is(err, model.ErrInvalidInput):
		return ErrCodeInvalidInput, ExitCommandError
	default:
		return ErrCodeCommand, ExitCommandError
	}
}

// errorDetails returns the structured part of a domain error, if any.
func errorDetails(err error) any {
	var pe *engine.PlacementError
	if errors.As(err, &pe) {
		return pe
	}
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	var re *export.RenderError
	if errors.As(err, &re) {
		return map[string]string{"format": re.Format}
	}
	return nil
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
	RunID  string    `json:"run_id,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// JSON reports whether output is machine-readable.
func (f *OutputFormatter) JSON() bool {
	return f.Format == "json"
}

// Success outputs a successful result in the configured format. Text output
// prints data with fmt; commands with richer text output write it themselves.
func (f *OutputFormatter) Success(data any) error {
	return f.SuccessWithRun("", data)
}

// SuccessWithRun is Success with a run ID attached to the JSON envelope.
func (f *OutputFormatter) SuccessWithRun(runID string, data any) error {
	if f.JSON() {
		return f.encode(CLIResponse{Status: "ok", Data: data, RunID: runID})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.JSON() {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.GetErrWriter(), "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.GetErrWriter(), "Details: %+v\n", details)
	}
	return nil
}

// Fail reports err through the formatter and returns the ExitError that
// carries its exit code. Errors that are already ExitErrors pass through.
func (f *OutputFormatter) Fail(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	code, exit := classify(err)
	_ = f.Error(code, err.Error(), errorDetails(err))
	return WrapExitError(exit, code, err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
