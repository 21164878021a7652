// Package procrun runs external executables with a wall-clock bound and
// reports a classified result instead of a bare error.
package procrun

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Result describes how a bounded subprocess run ended.
type Result struct {
	// TimedOut is true when the process was killed for exceeding the bound.
	TimedOut bool
	// ExitCode is the process exit code; -1 when the process never ran or
	// was killed.
	ExitCode int
	Stdout   string
	Stderr   string
	// Err is set only for failures outside the process itself (missing
	// executable, permission problems). Non-zero exits are reported through
	// ExitCode, not Err.
	Err error
}

// Output returns combined stdout and stderr for diagnostics.
func (r Result) Output() string {
	if r.Stdout == "" {
		return r.Stderr
	}
	if r.Stderr == "" {
		return r.Stdout
	}
	return r.Stdout + "\n" + r.Stderr
}

// Runner executes a command inside a working directory with a time bound.
type Runner interface {
	Run(ctx context.Context, dir string, timeout time.Duration, name string, args ...string) Result
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes the command and waits for it to exit or for the bound to
// elapse, at which point the process is killed.
func (ExecRunner) Run(ctx context.Context, dir string, timeout time.Duration, name string, args ...string) Result {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if runCtx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		res.ExitCode = -1
		return res
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
			res.Err = err
		}
	}

	return res
}
