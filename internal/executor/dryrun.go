package executor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/scenario-runner/sr/internal/tokenize"
)

// DryRunInvoker prints each command line instead of running it and reports
// the expected exit code as the outcome.
type DryRunInvoker struct {
	Out io.Writer
}

// Invoke writes the quoted command line, its working directory and any
// capture targets to Out.
func (d *DryRunInvoker) Invoke(ctx context.Context, inv *Invocation) (*Result, error) {
	out := d.Out
	if out == nil {
		out = os.Stdout
	}

	line := tokenize.Join(inv.Argv)
	if inv.Dir != "" {
		line = fmt.Sprintf("(cd %s && %s)", tokenize.Join([]string{inv.Dir}), line)
	}
	if inv.StdoutFile != "" {
		line += " >" + tokenize.Join([]string{inv.StdoutFile})
	}
	if inv.StderrFile != "" {
		line += " 2>" + tokenize.Join([]string{inv.StderrFile})
	}
	if _, err := fmt.Fprintln(out, line); err != nil {
		return nil, err
	}

	return &Result{ExitCode: inv.ExpectedExitCode}, nil
}
