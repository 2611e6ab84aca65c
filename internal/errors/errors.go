// Package errors provides structured error types for sr.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error codes for sr operations.
const (
	// Config errors
	CodeConfigMissingField    = "CONFIG_001" // Missing required field
	CodeConfigInvalidValue    = "CONFIG_002" // Invalid value or value type
	CodeConfigNoScenarios     = "CONFIG_003" // Scenario file defines no scenarios
	CodeConfigNoComposeFiles  = "CONFIG_004" // docker-compose action without compose files
	CodeConfigUnknownScenario = "CONFIG_005" // Scenario name not in the file
	CodeConfigUnsupported     = "CONFIG_006" // Unsupported scenario file format
	CodeConfigParseError      = "CONFIG_007" // Scenario file could not be parsed

	// Execution errors
	CodeExecExitCode = "EXEC_001" // Exit code did not match expectation

	// Launch errors
	CodeLaunchFailed = "LAUNCH_001" // Process could not be started

	// IO errors
	CodeIOFileNotFound = "IO_001" // File not found
	CodeIOReadError    = "IO_004" // Read error
	CodeIOWriteError   = "IO_005" // Write error
)

// ErrAborted reports that a run was interrupted from outside while waiting on
// a child process. It is a cancellation, not a failure.
var ErrAborted = errors.New("aborted by interrupt")

// Error is the structured error type for sr operations.
type Error struct {
	Code    string         `json:"code"`              // Error code (e.g., "CONFIG_001")
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Context (field, exit_code, path, ...)
	Cause   error          `json:"-"`                 // Wrapped error (not serialized)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// MarshalJSON implements json.Marshaler with cause error message. JSON log
// handlers use it, so logged errors keep their code and details.
func (e *Error) MarshalJSON() ([]byte, error) {
	type alias Error
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// New creates a new Error.
func New(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new Error with formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with an Error.
func Wrap(code, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with a formatted Error.
func Wrapf(code string, err error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// --- Config Errors ---

// ConfigMissingField creates an error for a missing required field.
func ConfigMissingField(field string) *Error {
	return Newf(CodeConfigMissingField, "missing '%s', must be either string or list", field).
		WithDetail("field", field)
}

// ConfigInvalidValue creates an error for an invalid field value.
func ConfigInvalidValue(field string, value any, reason string) *Error {
	return Newf(CodeConfigInvalidValue, "invalid value for '%s': %s", field, reason).
		WithDetail("field", field).
		WithDetail("value", value).
		WithDetail("reason", reason)
}

// ConfigNoScenarios creates an error for a scenario file without scenarios.
func ConfigNoScenarios(path string) *Error {
	return Newf(CodeConfigNoScenarios, "no scenarios specified in %s", path).
		WithDetail("path", path)
}

// ConfigNoComposeFiles creates an error for a docker-compose action that
// resolved to an empty compose file list.
func ConfigNoComposeFiles(scenario string) *Error {
	return New(CodeConfigNoComposeFiles, "'compose_files' must be specified either globally, in scenario or in action").
		WithDetail("scenario", scenario)
}

// ConfigUnknownScenario creates an error for a scenario name not in the file.
func ConfigUnknownScenario(name string) *Error {
	return Newf(CodeConfigUnknownScenario, "scenario not found: %s", name).
		WithDetail("scenario", name)
}

// ConfigUnsupportedFormat creates an error for an unknown file extension.
func ConfigUnsupportedFormat(path string) *Error {
	return Newf(CodeConfigUnsupported, "unsupported scenario file format: %s", path).
		WithDetail("path", path)
}

// ConfigParseError creates an error for a scenario file that failed to parse.
func ConfigParseError(path string, err error) *Error {
	return Wrap(CodeConfigParseError, "failed to parse scenario file", err).
		WithDetail("path", path)
}

// --- Execution Errors ---

// ExitCodeMismatch creates an error for a process whose exit code differs
// from the expected one.
func ExitCodeMismatch(actual, expected int) *Error {
	return Newf(CodeExecExitCode, "exitcode: %d (expected %d)", actual, expected).
		WithDetail("exit_code", actual).
		WithDetail("expected", expected)
}

// --- Launch Errors ---

// LaunchFailed creates an error for a process that could not be started.
func LaunchFailed(program string, err error) *Error {
	return Wrap(CodeLaunchFailed, "failed to start command", err).
		WithDetail("program", program)
}

// --- IO Errors ---

// IOFileNotFound creates an error for missing file.
func IOFileNotFound(path string) *Error {
	return Newf(CodeIOFileNotFound, "file not found: %s", path).
		WithDetail("path", path)
}

// IOReadError creates an error for read failures.
func IOReadError(path string, err error) *Error {
	return Wrap(CodeIOReadError, "failed to read file", err).
		WithDetail("path", path)
}

// IOWriteError creates an error for write failures.
func IOWriteError(path string, err error) *Error {
	return Wrap(CodeIOWriteError, "failed to write file", err).
		WithDetail("path", path)
}

// HasCode checks if an error is an Error with the given code.
// It handles wrapped errors by unwrapping to find an Error.
func HasCode(err error, code string) bool {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Code == code
	}
	return false
}

// Code returns the error code if err is an Error, empty string otherwise.
// It handles wrapped errors by unwrapping to find an Error.
func Code(err error) string {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Code
	}
	return ""
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	return strings.HasPrefix(Code(err), "CONFIG_")
}

// IsExecution reports whether err is an exit code mismatch.
func IsExecution(err error) bool {
	return HasCode(err, CodeExecExitCode)
}

// IsLaunch reports whether err is a process launch failure.
func IsLaunch(err error) bool {
	return HasCode(err, CodeLaunchFailed)
}

// IsAborted reports whether err is, or wraps, ErrAborted.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}

// ExitCode returns the actual exit code carried by an execution error.
func ExitCode(err error) (int, bool) {
	var serr *Error
	if !errors.As(err, &serr) || serr.Code != CodeExecExitCode {
		return 0, false
	}
	code, ok := serr.Details["exit_code"].(int)
	return code, ok
}
