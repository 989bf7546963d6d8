// Package executor runs the external privileged tool on behalf of an
// approved request and reports its outcome.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Result is the outcome of running an external command that actually
// started. A nonzero ExitCode is not an error: it is the tool's own
// exit status, proxied unchanged.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// SpawnError indicates the command could not be started at all
// (missing binary, permission problem). It is distinct from a command
// that ran and exited nonzero.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to execute %s: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Runner executes external commands. The interface exists so the proxy
// services can be tested without spawning real processes.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner is the real Runner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner creates an ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args, blocking until it exits, and captures
// stdout and stderr. It returns a SpawnError only when the process
// could not be started; otherwise the Result carries the real exit
// code, including nonzero ones.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}, nil
		}
		return Result{}, &SpawnError{Command: name, Err: err}
	}

	return Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}
