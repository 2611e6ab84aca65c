package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		wantStr  string
	}{
		{
			name: "simple error",
			err: &Error{
				Code:    "TEST_001",
				Message: "test error",
			},
			wantStr: "[TEST_001] test error",
		},
		{
			name: "error with cause",
			err: &Error{
				Code:    "TEST_002",
				Message: "wrapped error",
				Cause:   errors.New("underlying"),
			},
			wantStr: "[TEST_002] wrapped error: underlying",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Code:    "TEST_001",
		Message: "test",
		Cause:   underlying,
	}

	if got := err.Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}
}

func TestError_WithDetail(t *testing.T) {
	err := New("TEST_001", "test").
		WithDetail("key1", "value1").
		WithDetail("key2", 42)

	if err.Details["key1"] != "value1" {
		t.Errorf("Details[key1] = %v, want value1", err.Details["key1"])
	}
	if err.Details["key2"] != 42 {
		t.Errorf("Details[key2] = %v, want 42", err.Details["key2"])
	}
}

func TestError_WithCause(t *testing.T) {
	cause := errors.New("cause")
	err := New("TEST_001", "test").WithCause(cause)

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
}

func TestError_MarshalJSON(t *testing.T) {
	err := &Error{
		Code:    "TEST_001",
		Message: "test error",
		Details: map[string]any{"field": "cmd"},
		Cause:   errors.New("underlying"),
	}

	data, jsonErr := json.Marshal(err)
	if jsonErr != nil {
		t.Fatalf("Marshal failed: %v", jsonErr)
	}

	var result map[string]any
	if jsonErr := json.Unmarshal(data, &result); jsonErr != nil {
		t.Fatalf("Unmarshal failed: %v", jsonErr)
	}

	if result["code"] != "TEST_001" {
		t.Errorf("code = %v, want TEST_001", result["code"])
	}
	if result["message"] != "test error" {
		t.Errorf("message = %v, want test error", result["message"])
	}
	if result["cause"] != "underlying" {
		t.Errorf("cause = %v, want underlying", result["cause"])
	}
	details, ok := result["details"].(map[string]any)
	if !ok {
		t.Fatalf("details not a map")
	}
	if details["field"] != "cmd" {
		t.Errorf("details.field = %v, want cmd", details["field"])
	}
}

func TestNew(t *testing.T) {
	err := New("CODE_001", "message")
	if err.Code != "CODE_001" {
		t.Errorf("Code = %s, want CODE_001", err.Code)
	}
	if err.Message != "message" {
		t.Errorf("Message = %s, want message", err.Message)
	}
}

func TestNewf(t *testing.T) {
	err := Newf("CODE_001", "value is %d", 42)
	if err.Message != "value is 42" {
		t.Errorf("Message = %s, want 'value is 42'", err.Message)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("original")
	err := Wrap("CODE_001", "wrapped", cause)

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Message != "wrapped" {
		t.Errorf("Message = %s, want wrapped", err.Message)
	}
}

func TestWrapf(t *testing.T) {
	cause := errors.New("original")
	err := Wrapf("CODE_001", cause, "wrapped %s", "value")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Message != "wrapped value" {
		t.Errorf("Message = %s, want 'wrapped value'", err.Message)
	}
}

func TestHasCode(t *testing.T) {
	err := New("TEST_001", "test")
	if !HasCode(err, "TEST_001") {
		t.Error("HasCode(err, TEST_001) = false, want true")
	}
	if HasCode(err, "TEST_002") {
		t.Error("HasCode(err, TEST_002) = true, want false")
	}
	if HasCode(errors.New("plain"), "TEST_001") {
		t.Error("HasCode(regular error) = true, want false")
	}

	// Test wrapped error
	wrapped := fmt.Errorf("outer: %w", err)
	if !HasCode(wrapped, "TEST_001") {
		t.Error("HasCode should find code in wrapped error")
	}
}

func TestCode(t *testing.T) {
	err := New("TEST_001", "test")
	if got := Code(err); got != "TEST_001" {
		t.Errorf("Code() = %s, want TEST_001", got)
	}
	if got := Code(errors.New("regular")); got != "" {
		t.Errorf("Code(regular) = %s, want empty", got)
	}

	// Test wrapped error
	wrapped := fmt.Errorf("outer: %w", err)
	if got := Code(wrapped); got != "TEST_001" {
		t.Errorf("Code(wrapped) = %s, want TEST_001", got)
	}
}

// Test factory functions produce correct codes
func TestFactoryFunctions(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		wantCode string
	}{
		{"ConfigMissingField", ConfigMissingField("cmd"), CodeConfigMissingField},
		{"ConfigInvalidValue", ConfigInvalidValue("args", 42, "must be string or list"), CodeConfigInvalidValue},
		{"ConfigNoScenarios", ConfigNoScenarios("sr.yml"), CodeConfigNoScenarios},
		{"ConfigNoComposeFiles", ConfigNoComposeFiles("up"), CodeConfigNoComposeFiles},
		{"ConfigUnknownScenario", ConfigUnknownScenario("down"), CodeConfigUnknownScenario},
		{"ConfigUnsupportedFormat", ConfigUnsupportedFormat("sr.ini"), CodeConfigUnsupported},
		{"ConfigParseError", ConfigParseError("sr.yml", errors.New("err")), CodeConfigParseError},
		{"ExitCodeMismatch", ExitCodeMismatch(1, 0), CodeExecExitCode},
		{"LaunchFailed", LaunchFailed("nope", errors.New("err")), CodeLaunchFailed},
		{"IOFileNotFound", IOFileNotFound("/path"), CodeIOFileNotFound},
		{"IOReadError", IOReadError("/path", errors.New("err")), CodeIOReadError},
		{"IOWriteError", IOWriteError("/path", errors.New("err")), CodeIOWriteError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
		})
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		config    bool
		execution bool
		launch    bool
		aborted   bool
	}{
		{"missing field", ConfigMissingField("cmd"), true, false, false, false},
		{"no compose files", fmt.Errorf("action 1: %w", ConfigNoComposeFiles("up")), true, false, false, false},
		{"exit code", ExitCodeMismatch(3, 0), false, true, false, false},
		{"launch", LaunchFailed("nope", errors.New("not found")), false, false, true, false},
		{"aborted", fmt.Errorf("waiting: %w", ErrAborted), false, false, false, true},
		{"plain", errors.New("plain"), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfig(tt.err); got != tt.config {
				t.Errorf("IsConfig = %v, want %v", got, tt.config)
			}
			if got := IsExecution(tt.err); got != tt.execution {
				t.Errorf("IsExecution = %v, want %v", got, tt.execution)
			}
			if got := IsLaunch(tt.err); got != tt.launch {
				t.Errorf("IsLaunch = %v, want %v", got, tt.launch)
			}
			if got := IsAborted(tt.err); got != tt.aborted {
				t.Errorf("IsAborted = %v, want %v", got, tt.aborted)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	code, ok := ExitCode(fmt.Errorf("wrapped: %w", ExitCodeMismatch(7, 0)))
	if !ok || code != 7 {
		t.Errorf("ExitCode() = %d, %v, want 7, true", code, ok)
	}

	if _, ok := ExitCode(ConfigMissingField("cmd")); ok {
		t.Error("ExitCode() on config error should report false")
	}
}
