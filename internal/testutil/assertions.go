package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/scenario-runner/sr/internal/errors"
	"github.com/scenario-runner/sr/internal/status"
)

// AssertFileContent asserts that path exists and holds exactly want.
func AssertFileContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Expected file %s to be readable: %v", path, err)
		return
	}
	if string(data) != want {
		t.Errorf("File %s content = %q, want %q", path, data, want)
	}
}

// AssertFileNotExists asserts that nothing exists at path.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected %s to not exist", path)
	}
}

// AssertErrorCode asserts that err carries the given error code.
func AssertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Errorf("Expected error with code %s, got nil", code)
		return
	}
	if !errors.HasCode(err, code) {
		t.Errorf("Expected error code %s, got %s (%v)", code, errors.Code(err), err)
	}
}

// AssertErrorContains asserts that err is non-nil and mentions substring.
func AssertErrorContains(t *testing.T, err error, substring string) {
	t.Helper()
	if err == nil {
		t.Errorf("Expected an error containing %q, got nil", substring)
		return
	}
	if !strings.Contains(err.Error(), substring) {
		t.Errorf("Expected error to contain %q, got %v", substring, err)
	}
}

// AssertOutcome asserts a finished report's outcome and exit code.
func AssertOutcome(t *testing.T, r *status.Report, outcome status.Outcome, exitCode int) {
	t.Helper()
	if r == nil {
		t.Fatal("report is nil")
	}
	if r.Outcome != outcome || r.ExitCode != exitCode {
		t.Errorf("outcome = %s (exit %d), want %s (exit %d); errors: %v",
			r.Outcome, r.ExitCode, outcome, exitCode, r.Errors())
	}
}

// AssertActionStatuses asserts the status of every action in order.
func AssertActionStatuses(t *testing.T, r *status.Report, want ...status.ActionStatus) {
	t.Helper()
	if len(r.Actions) != len(want) {
		t.Fatalf("report has %d actions, want %d", len(r.Actions), len(want))
	}
	for i, a := range r.Actions {
		if a.Status != want[i] {
			t.Errorf("action %d status = %s, want %s", i+1, a.Status, want[i])
		}
	}
}
