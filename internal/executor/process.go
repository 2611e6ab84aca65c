// Package executor runs the child process for an action, with optional
// output capture, exit code checking and interrupt support.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/scenario-runner/sr/internal/errors"
)

// Invocation describes one child process to run.
type Invocation struct {
	// Argv is the program followed by its arguments. Must not be empty.
	Argv []string

	// Env is the complete child environment as KEY=VALUE pairs.
	// Nil inherits the current process environment.
	Env []string

	// Dir is the child's working directory. Empty means the current one.
	Dir string

	// StdoutFile and StderrFile capture the matching stream into memory and
	// write it to the file once the process has exited with the expected
	// code. An empty path leaves the stream attached to the caller's.
	StdoutFile string
	StderrFile string

	// ExpectedExitCode is the exit code that counts as success.
	ExpectedExitCode int
}

// Result is the outcome of a finished child process.
type Result struct {
	ExitCode int
	Stdout   []byte // Set only when stdout was captured
	Stderr   []byte // Set only when stderr was captured
	Duration time.Duration
}

// Invoker runs invocations. ProcessInvoker is the real implementation.
type Invoker interface {
	Invoke(ctx context.Context, inv *Invocation) (*Result, error)
}

// ProcessInvoker starts child processes and waits for them.
type ProcessInvoker struct {
	// StopGracePeriod is how long a child gets to exit after being
	// interrupted before it is killed.
	StopGracePeriod time.Duration

	// Stdin, Stdout and Stderr are the streams children inherit.
	// Nil means the current process's.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Logger *slog.Logger
}

// NewProcessInvoker creates a ProcessInvoker with default settings.
func NewProcessInvoker(logger *slog.Logger) *ProcessInvoker {
	return &ProcessInvoker{
		StopGracePeriod: 3 * time.Second,
		Logger:          logger,
	}
}

// Invoke runs inv to completion.
//
// When ctx is cancelled while the child runs, the child is interrupted
// (killed on Windows), given StopGracePeriod to exit, then killed, and
// errors.ErrAborted is returned. A cancellation is not an execution failure.
//
// An exit code other than inv.ExpectedExitCode yields an execution error
// carrying the actual code; capture files are only written on a match.
func (p *ProcessInvoker) Invoke(ctx context.Context, inv *Invocation) (*Result, error) {
	if inv == nil || len(inv.Argv) == 0 {
		return nil, errors.ConfigInvalidValue("cmd", nil, "empty command line")
	}
	if ctx.Err() != nil {
		return nil, errors.ErrAborted
	}

	var cmd *exec.Cmd
	if inv.Env == nil {
		cmd = exec.Command(inv.Argv[0], inv.Argv[1:]...)
	} else {
		program, err := resolveProgram(inv.Argv[0], inv.Env, inv.Dir)
		if err != nil {
			return nil, errors.LaunchFailed(inv.Argv[0], err)
		}
		cmd = exec.Command(program, inv.Argv[1:]...)
		cmd.Args[0] = inv.Argv[0]
	}
	cmd.Dir = inv.Dir
	cmd.Env = inv.Env
	cmd.Stdin = orDefault(p.Stdin, os.Stdin)

	var stdout, stderr bytes.Buffer
	if inv.StdoutFile != "" {
		cmd.Stdout = &stdout
	} else {
		cmd.Stdout = orDefaultWriter(p.Stdout, os.Stdout)
	}
	if inv.StderrFile != "" {
		cmd.Stderr = &stderr
	} else {
		cmd.Stderr = orDefaultWriter(p.Stderr, os.Stderr)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, errors.LaunchFailed(inv.Argv[0], err)
	}

	// Wait for completion or cancellation
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var waitErr error
	select {
	case <-ctx.Done():
		p.stop(cmd.Process, done)
		return &Result{ExitCode: -1, Duration: time.Since(start)}, errors.ErrAborted

	case waitErr = <-done:
	}

	result := &Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}
	if waitErr != nil {
		if _, ok := waitErr.(*exec.ExitError); !ok {
			return result, fmt.Errorf("waiting for %s: %w", inv.Argv[0], waitErr)
		}
	}

	if result.ExitCode != inv.ExpectedExitCode {
		return result, errors.ExitCodeMismatch(result.ExitCode, inv.ExpectedExitCode)
	}

	if inv.StdoutFile != "" {
		result.Stdout = stdout.Bytes()
		if err := os.WriteFile(inv.StdoutFile, result.Stdout, 0644); err != nil {
			return result, errors.IOWriteError(inv.StdoutFile, err)
		}
	}
	if inv.StderrFile != "" {
		result.Stderr = stderr.Bytes()
		if err := os.WriteFile(inv.StderrFile, result.Stderr, 0644); err != nil {
			return result, errors.IOWriteError(inv.StderrFile, err)
		}
	}

	return result, nil
}

// stop interrupts the child and kills it if it outlives the grace period.
// It returns once the child has been reaped.
func (p *ProcessInvoker) stop(proc *os.Process, done <-chan error) {
	if err := interrupt(proc); err != nil {
		_ = proc.Kill()
		<-done
		return
	}

	select {
	case <-done:
	case <-time.After(p.StopGracePeriod):
		if p.Logger != nil {
			p.Logger.Warn("child ignored interrupt, killing", "pid", proc.Pid, "grace", p.StopGracePeriod)
		}
		_ = proc.Kill()
		<-done
	}
}

// interrupt asks proc to stop. Windows has no interrupt signal for arbitrary
// processes, so the child is killed outright there.
func interrupt(proc *os.Process) error {
	if runtime.GOOS == "windows" {
		return proc.Kill()
	}
	return proc.Signal(os.Interrupt)
}

func orDefault(r io.Reader, def *os.File) io.Reader {
	if r != nil {
		return r
	}
	return def
}

func orDefaultWriter(w io.Writer, def *os.File) io.Writer {
	if w != nil {
		return w
	}
	return def
}
