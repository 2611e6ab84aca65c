package runner

import (
	"context"

	"github.com/scenario-runner/sr/internal/executor"
	"github.com/scenario-runner/sr/internal/settings"
	"github.com/scenario-runner/sr/internal/tokenize"
	"github.com/scenario-runner/sr/internal/types"
)

// ShellExecutor runs an action's cmd and args directly, without a shell.
type ShellExecutor struct {
	Invoker executor.Invoker
}

// Execute runs a shell action: tokens(cmd) followed by tokens(args).
func (e *ShellExecutor) Execute(ctx context.Context, req *Request) (*Execution, error) {
	return run(ctx, e.Invoker, req, func(spec *types.ActionSpec, _ *settings.Effective) ([]string, error) {
		argv, err := tokenize.Tokens("cmd", spec.Cmd, true)
		if err != nil {
			return nil, err
		}
		return tokenize.Append(argv, "args", spec.Args, false)
	})
}
