// Package status records the progress of a scenario run and renders it for
// the terminal.
package status

import (
	"time"

	"github.com/scenario-runner/sr/internal/types"
)

// Outcome is the lifecycle state of a scenario run.
type Outcome string

const (
	OutcomePending   Outcome = "pending"   // Created but not started
	OutcomeRunning   Outcome = "running"   // An action is executing
	OutcomeCompleted Outcome = "completed" // Every action passed
	OutcomeHalted    Outcome = "halted"    // An action finished with an unexpected code
	OutcomeFailed    Outcome = "failed"    // An action raised an error
	OutcomeAborted   Outcome = "aborted"   // Interrupted from outside
)

// Valid returns true if this is a recognized outcome.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomePending, OutcomeRunning, OutcomeCompleted,
		OutcomeHalted, OutcomeFailed, OutcomeAborted:
		return true
	}
	return false
}

// IsTerminal returns true if this outcome is final.
func (o Outcome) IsTerminal() bool {
	return o == OutcomeCompleted || o == OutcomeHalted || o == OutcomeFailed || o == OutcomeAborted
}

// ActionStatus is the state of one action within a run.
type ActionStatus string

const (
	ActionPending ActionStatus = "pending"
	ActionRunning ActionStatus = "running"
	ActionDone    ActionStatus = "done"
	ActionFailed  ActionStatus = "failed"
	ActionSkipped ActionStatus = "skipped" // Never launched because an earlier action stopped the run
	ActionAborted ActionStatus = "aborted"
)

// ActionReport records what happened to one action.
type ActionReport struct {
	Index    int              `json:"index"`
	Kind     types.ActionKind `json:"kind"`
	Command  string           `json:"command,omitempty"` // Quoted command line, once assembled
	Status   ActionStatus     `json:"status"`
	ExitCode int              `json:"exit_code"`
	Duration time.Duration    `json:"duration"`
	Error    string           `json:"error,omitempty"`
}

// Report is the record of one scenario run.
type Report struct {
	RunID     string         `json:"run_id"`
	Scenario  string         `json:"scenario"`
	Outcome   Outcome        `json:"outcome"`
	ExitCode  int            `json:"exit_code"`
	StartedAt time.Time      `json:"started_at"`
	DoneAt    *time.Time     `json:"done_at,omitempty"`
	Actions   []ActionReport `json:"actions"`
}

// NewReport creates a pending report with one pending entry per action.
func NewReport(runID string, scenario *types.Scenario) *Report {
	r := &Report{
		RunID:     runID,
		Scenario:  scenario.Name,
		Outcome:   OutcomePending,
		StartedAt: time.Now(),
		Actions:   make([]ActionReport, len(scenario.Actions)),
	}
	for i, a := range scenario.Actions {
		r.Actions[i] = ActionReport{Index: i, Kind: a.Kind, Status: ActionPending}
	}
	return r
}

// Finish moves the report to a terminal outcome. Actions still pending are
// marked skipped.
func (r *Report) Finish(outcome Outcome, exitCode int) {
	now := time.Now()
	r.Outcome = outcome
	r.ExitCode = exitCode
	r.DoneAt = &now
	for i := range r.Actions {
		if r.Actions[i].Status == ActionPending {
			r.Actions[i].Status = ActionSkipped
		}
	}
}

// ActionsRun returns how many actions were launched.
func (r *Report) ActionsRun() int {
	n := 0
	for _, a := range r.Actions {
		if a.Status != ActionPending && a.Status != ActionSkipped {
			n++
		}
	}
	return n
}

// ActionStats contains action count breakdown.
type ActionStats struct {
	Total   int `json:"total"`
	Done    int `json:"done"`
	Running int `json:"running"`
	Pending int `json:"pending"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
	Aborted int `json:"aborted"`
}

// Stats computes the action count breakdown.
func (r *Report) Stats() ActionStats {
	stats := ActionStats{Total: len(r.Actions)}
	for _, a := range r.Actions {
		switch a.Status {
		case ActionDone:
			stats.Done++
		case ActionRunning:
			stats.Running++
		case ActionPending:
			stats.Pending++
		case ActionFailed:
			stats.Failed++
		case ActionSkipped:
			stats.Skipped++
		case ActionAborted:
			stats.Aborted++
		}
	}
	return stats
}

// Errors returns the error messages recorded on actions, in order.
func (r *Report) Errors() []string {
	var errs []string
	for _, a := range r.Actions {
		if a.Error != "" {
			errs = append(errs, a.Error)
		}
	}
	return errs
}
