package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/fanosum/internal/engine"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Run failure (identification failed, backend error, failed scenarios)
	ExitCommandError = 2 // Command error (invalid arguments or options, catalog not found, etc.)
)

// Error codes carried in JSON error responses.
const (
	ErrCodeConfig   = "E_CONFIG"    // invalid arguments, options or config file
	ErrCodeNotFound = "E_NOT_FOUND" // a constructed polytope has no catalog match
	ErrCodeInput    = "E_INPUT"     // unreadable or malformed input file
	ErrCodeInternal = "E_INTERNAL"  // catalog or geometry backend failure
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported is set once the error has been written through an
	// OutputFormatter, so the entry point does not print it again.
	Reported bool
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
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// IsReported returns true if err is an ExitError already written to the
// user.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool

	// TraceID is the run id attached to every JSON response.
	TraceID string
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status  string      `json:"status"`             // "ok" or "error"
	Data    interface{} `json:"data,omitempty"`     // success payload
	Error   *CLIError   `json:"error,omitempty"`    // error details
	TraceID string      `json:"trace_id,omitempty"` // run id
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E_CONFIG", "E_NOT_FOUND", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status:  "ok",
			Data:    data,
			TraceID: f.TraceID,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
			TraceID: f.TraceID,
		})
	}

	// Human-readable error
	fmt.Fprintf(f.GetErrWriter(), "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.GetErrWriter(), "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// notFoundDetails is the JSON detail payload of an E_NOT_FOUND error.
type notFoundDetails struct {
	Dimension     int `json:"dimension"`
	Vertices      int `json:"n_vertices"`
	Facets        int `json:"n_facets"`
	LatticePoints int `json:"n_lattice_points"`
	Shortlisted   int `json:"shortlisted"`
}

// report writes err through the formatter and returns the matching
// ExitError: configuration errors exit with ExitCommandError, everything
// else with ExitFailure.
func (f *OutputFormatter) report(err error) error {
	var (
		ce *engine.ConfigurationError
		nf *engine.NotFoundError
		ee *ExitError
	)
	var exitErr *ExitError
	switch {
	case errors.As(err, &ee):
		if ee.Reported {
			return ee
		}
		code := ErrCodeInternal
		if ee.Code == ExitCommandError {
			code = ErrCodeInput
		}
		_ = f.Error(code, ee.Error(), nil)
		exitErr = ee

	case errors.As(err, &ce):
		_ = f.Error(ErrCodeConfig, ce.Error(), nil)
		exitErr = WrapExitError(ExitCommandError, "invalid configuration", err)

	case errors.As(err, &nf):
		_ = f.Error(ErrCodeNotFound, err.Error(), notFoundDetails{
			Dimension:     nf.Invariants.Dimension,
			Vertices:      nf.Invariants.Vertices,
			Facets:        nf.Invariants.Facets,
			LatticePoints: nf.Invariants.LatticePoints,
			Shortlisted:   nf.Shortlisted,
		})
		exitErr = WrapExitError(ExitFailure, "identification failed", err)

	default:
		_ = f.Error(ErrCodeInternal, err.Error(), nil)
		exitErr = WrapExitError(ExitFailure, "run failed", err)
	}
	exitErr.Reported = true
	return exitErr
}
