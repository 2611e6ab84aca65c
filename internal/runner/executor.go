// Package runner assembles command lines for scenario actions and runs a
// scenario's actions in order, stopping at the first failure.
package runner

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/scenario-runner/sr/internal/executor"
	"github.com/scenario-runner/sr/internal/settings"
	"github.com/scenario-runner/sr/internal/tokenize"
	"github.com/scenario-runner/sr/internal/types"
)

// Request carries everything an executor needs to run one action.
type Request struct {
	Global   types.GlobalScope
	Scenario *types.Scenario
	Action   *types.Action

	// BaseDir is the scenario file's directory. Children run there.
	BaseDir string

	// HostEnv is the bottom environment layer.
	HostEnv map[string]string

	Logger *slog.Logger
}

// Execution is what an executor produced. Invocation is set once the
// command line was assembled, Result once the process ran.
type Execution struct {
	Invocation *executor.Invocation
	Result     *executor.Result
}

// ActionExecutor runs one kind of action.
type ActionExecutor interface {
	Execute(ctx context.Context, req *Request) (*Execution, error)
}

// assembleFunc builds argv for an action from its effective settings.
type assembleFunc func(spec *types.ActionSpec, eff *settings.Effective) ([]string, error)

// run merges settings, assembles the command line and hands it to invoker.
func run(ctx context.Context, invoker executor.Invoker, req *Request, assemble assembleFunc) (*Execution, error) {
	exec := &Execution{}
	spec := &req.Action.Spec

	eff, err := settings.Merge(req.HostEnv, req.Global, req.Scenario, req.Action)
	if err != nil {
		return exec, err
	}

	argv, err := assemble(spec, eff)
	if err != nil {
		return exec, err
	}

	exec.Invocation = &executor.Invocation{
		Argv:             argv,
		Env:              eff.Environ(),
		Dir:              req.BaseDir,
		StdoutFile:       resolvePath(req.BaseDir, spec.StdoutFile),
		StderrFile:       resolvePath(req.BaseDir, spec.StderrFile),
		ExpectedExitCode: spec.ExpectedExitCode(),
	}

	if req.Logger != nil {
		req.Logger.Info("executing", "command", tokenize.Join(argv))
	}

	exec.Result, err = invoker.Invoke(ctx, exec.Invocation)
	return exec, err
}

// appendCommand appends the tokenized cmd (required) and args fields to the
// compose prefix.
func appendCommand(argv []string, spec *types.ActionSpec) ([]string, error) {
	argv, err := tokenize.Append(argv, "cmd", spec.Cmd, true)
	if err != nil {
		return nil, err
	}
	return tokenize.Append(argv, "args", spec.Args, false)
}

// resolvePath anchors a relative capture path at baseDir.
func resolvePath(baseDir, p string) string {
	if p == "" {
		return ""
	}
	p = settings.NormalizePath(p)
	if baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
