package status

import (
	"testing"

	"github.com/scenario-runner/sr/internal/types"
)

func testScenario(n int) *types.Scenario {
	s := &types.Scenario{Name: "up"}
	for i := 0; i < n; i++ {
		s.Actions = append(s.Actions, types.NewShellAction(types.ActionSpec{Cmd: types.Single("true")}))
	}
	return s
}

func TestNewReport(t *testing.T) {
	r := NewReport("run-1", testScenario(3))

	if r.Outcome != OutcomePending {
		t.Errorf("Outcome = %s, want pending", r.Outcome)
	}
	if len(r.Actions) != 3 {
		t.Fatalf("len(Actions) = %d, want 3", len(r.Actions))
	}
	for i, a := range r.Actions {
		if a.Index != i || a.Status != ActionPending || a.Kind != types.ActionShell {
			t.Errorf("Actions[%d] = %+v", i, a)
		}
	}
}

func TestReport_FinishMarksSkipped(t *testing.T) {
	r := NewReport("run-1", testScenario(3))
	r.Actions[0].Status = ActionDone
	r.Actions[1].Status = ActionFailed
	r.Actions[1].Error = "boom"

	r.Finish(OutcomeFailed, -1)

	if r.DoneAt == nil {
		t.Error("DoneAt should be set")
	}
	if r.Actions[2].Status != ActionSkipped {
		t.Errorf("Actions[2].Status = %s, want skipped", r.Actions[2].Status)
	}
	if got := r.ActionsRun(); got != 2 {
		t.Errorf("ActionsRun() = %d, want 2", got)
	}

	stats := r.Stats()
	if stats.Total != 3 || stats.Done != 1 || stats.Failed != 1 || stats.Skipped != 1 {
		t.Errorf("Stats() = %+v", stats)
	}
	if errs := r.Errors(); len(errs) != 1 || errs[0] != "boom" {
		t.Errorf("Errors() = %v", errs)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		outcome  Outcome
		terminal bool
	}{
		{OutcomePending, false},
		{OutcomeRunning, false},
		{OutcomeCompleted, true},
		{OutcomeHalted, true},
		{OutcomeFailed, true},
		{OutcomeAborted, true},
	}

	for _, tt := range tests {
		if !tt.outcome.Valid() {
			t.Errorf("%s should be valid", tt.outcome)
		}
		if got := tt.outcome.IsTerminal(); got != tt.terminal {
			t.Errorf("%s.IsTerminal() = %v, want %v", tt.outcome, got, tt.terminal)
		}
	}
	if Outcome("bogus").Valid() {
		t.Error("bogus outcome should not be valid")
	}
}
