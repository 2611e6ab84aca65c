package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scenario-runner/sr/internal/errors"
	"github.com/scenario-runner/sr/internal/executor"
	"github.com/scenario-runner/sr/internal/logging"
	"github.com/scenario-runner/sr/internal/settings"
	"github.com/scenario-runner/sr/internal/status"
	"github.com/scenario-runner/sr/internal/tokenize"
	"github.com/scenario-runner/sr/internal/types"
)

// Exit codes reported for a run that did not finish normally.
const (
	ExitFailure = -1 // an action raised an error
	ExitAborted = -1 // the run was interrupted
)

// Options configures an Engine.
type Options struct {
	// Invoker runs child processes. Nil uses a ProcessInvoker.
	Invoker executor.Invoker

	// ComposeProgram is the compose tool command line.
	ComposeProgram string

	// BaseDir is the directory children run in and relative capture paths
	// are resolved against.
	BaseDir string

	// HostEnv is the bottom environment layer. Nil reads the process
	// environment at the start of each run.
	HostEnv map[string]string

	Logger *slog.Logger
}

// Engine runs a scenario's actions in order and stops at the first failure.
type Engine struct {
	executors map[types.ActionKind]ActionExecutor
	baseDir   string
	hostEnv   map[string]string
	logger    *slog.Logger
}

// NewEngine creates an engine with the shell and docker-compose executors.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	invoker := opts.Invoker
	if invoker == nil {
		invoker = executor.NewProcessInvoker(logger)
	}

	return &Engine{
		executors: map[types.ActionKind]ActionExecutor{
			types.ActionShell:         &ShellExecutor{Invoker: invoker},
			types.ActionDockerCompose: &ComposeExecutor{Invoker: invoker, Program: opts.ComposeProgram},
		},
		baseDir: opts.BaseDir,
		hostEnv: opts.HostEnv,
		logger:  logger,
	}
}

// RegisterExecutor sets the executor for kind, replacing any existing one.
func (e *Engine) RegisterExecutor(kind types.ActionKind, exec ActionExecutor) {
	e.executors[kind] = exec
}

// Run executes scenario's actions sequentially under global.
//
// The run stops at the first action that raises an error (exit code -1),
// that finishes with an exit code other than its expected one (that code),
// or that is interrupted through ctx (exit code -1, outcome aborted).
// A scenario with no actions completes with exit code 0.
func (e *Engine) Run(ctx context.Context, scenario *types.Scenario, global types.GlobalScope) *status.Report {
	runID := logging.NewRunID()
	report := status.NewReport(runID, scenario)
	logger := logging.WithScenario(logging.WithRun(e.logger, runID), scenario.Name)

	if len(scenario.Actions) == 0 {
		logger.Warn("no actions specified for scenario")
		report.Finish(status.OutcomeCompleted, 0)
		return report
	}

	hostEnv := e.hostEnv
	if hostEnv == nil {
		hostEnv = settings.HostEnv()
	}

	logger.Info("scenario starting", "actions", len(scenario.Actions))
	report.Outcome = status.OutcomeRunning

	for i := range scenario.Actions {
		action := &scenario.Actions[i]
		entry := &report.Actions[i]
		alog := logging.WithAction(logger, i+1, string(action.Kind))

		if ctx.Err() != nil {
			logger.Warn("scenario interrupted", "reason", ctx.Err())
			report.Finish(status.OutcomeAborted, ExitAborted)
			return report
		}

		exec, ok := e.executors[action.Kind]
		if !ok {
			err := errors.ConfigInvalidValue("action", string(action.Kind), "unknown action type")
			e.fail(alog, report, entry, err)
			return report
		}

		entry.Status = status.ActionRunning
		start := time.Now()
		execution, err := exec.Execute(ctx, &Request{
			Global:   global,
			Scenario: scenario,
			Action:   action,
			BaseDir:  e.baseDir,
			HostEnv:  hostEnv,
			Logger:   alog,
		})
		entry.Duration = time.Since(start)
		if execution != nil {
			if execution.Invocation != nil {
				entry.Command = tokenize.Join(execution.Invocation.Argv)
			}
			if execution.Result != nil {
				entry.ExitCode = execution.Result.ExitCode
				entry.Duration = execution.Result.Duration
			}
		}

		if errors.IsAborted(err) {
			entry.Status = status.ActionAborted
			entry.ExitCode = ExitAborted
			alog.Warn("action interrupted, abandoning scenario")
			report.Finish(status.OutcomeAborted, ExitAborted)
			return report
		}
		if err != nil {
			e.fail(alog, report, entry, err)
			return report
		}

		expected := action.Spec.ExpectedExitCode()
		if code := execution.Result.ExitCode; code != expected {
			entry.Status = status.ActionFailed
			entry.Error = fmt.Sprintf("action %d exited with code %d, expected %d", i+1, code, expected)
			alog.Warn("action exited with unexpected code, halting", "exit_code", code, "expected", expected)
			if code == 0 {
				code = ExitFailure
			}
			report.Finish(status.OutcomeHalted, code)
			return report
		}

		entry.Status = status.ActionDone
		alog.Debug("action completed", "exit_code", entry.ExitCode, "duration", entry.Duration)
	}

	logger.Info("scenario completed")
	report.Finish(status.OutcomeCompleted, 0)
	return report
}

func (e *Engine) fail(logger *slog.Logger, report *status.Report, entry *status.ActionReport, err error) {
	entry.Status = status.ActionFailed
	entry.Error = err.Error()
	if code, ok := errors.ExitCode(err); ok {
		entry.ExitCode = code
	} else {
		entry.ExitCode = ExitFailure
	}
	logger.Error("action failed", "error", err)
	report.Finish(status.OutcomeFailed, ExitFailure)
}
