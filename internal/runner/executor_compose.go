package runner

import (
	"context"

	"github.com/scenario-runner/sr/internal/errors"
	"github.com/scenario-runner/sr/internal/executor"
	"github.com/scenario-runner/sr/internal/settings"
	"github.com/scenario-runner/sr/internal/tokenize"
	"github.com/scenario-runner/sr/internal/types"
)

// DefaultComposeProgram is the compose tool invoked when none is configured.
const DefaultComposeProgram = "docker-compose"

// ComposeExecutor runs docker-compose with the merged compose file list.
type ComposeExecutor struct {
	Invoker executor.Invoker

	// Program is the compose command line, e.g. "docker-compose" or
	// "docker compose". Empty means DefaultComposeProgram.
	Program string
}

// Execute runs a docker-compose action:
// program, -f pairs in global/scenario/action order, tokens(cmd), tokens(args).
func (e *ComposeExecutor) Execute(ctx context.Context, req *Request) (*Execution, error) {
	return run(ctx, e.Invoker, req, func(spec *types.ActionSpec, eff *settings.Effective) ([]string, error) {
		argv, err := e.program()
		if err != nil {
			return nil, err
		}
		for _, f := range eff.ComposeFiles {
			argv = append(argv, "-f", f)
		}
		return appendCommand(argv, spec)
	})
}

func (e *ComposeExecutor) program() ([]string, error) {
	if e.Program == "" {
		return []string{DefaultComposeProgram}, nil
	}
	argv, err := tokenize.Split(e.Program)
	if err != nil {
		return nil, errors.ConfigInvalidValue("compose.program", e.Program, "cannot split into arguments").WithCause(err)
	}
	if len(argv) == 0 {
		return []string{DefaultComposeProgram}, nil
	}
	return argv, nil
}
