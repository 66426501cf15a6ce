// Package toolexec runs external command-line tools and captures their result.
//
// The rendering stages depend only on the Runner interface, so tests can
// substitute a fake (see toolexectest) instead of spawning real processes.
package toolexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrStartFailed indicates the executable could not be started at all
// (missing, not executable, ...). A tool that starts and exits non-zero is
// not an error at this level; inspect Result.ExitCode instead.
var ErrStartFailed = errors.New("tool could not be started")

// Invocation is one call of an external executable.
type Invocation struct {
	Path string
	Args []string
	Dir  string // working directory; empty means the current one
}

// String renders the invocation as a shell-like command line for logs.
func (i Invocation) String() string {
	return strings.TrimSpace(i.Path + " " + strings.Join(i.Args, " "))
}

// Result is the captured outcome of a finished invocation.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether the tool exited with status zero.
func (r Result) Success() bool { return r.ExitCode == 0 }

// Runner executes invocations. Run blocks until the process exits.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
	LookPath(file string) (string, error)
}

// ExecRunner runs invocations as real subprocesses via os/exec.
type ExecRunner struct{}

// Run starts the process and waits for it. There is no timeout; a hung tool
// blocks until ctx is cancelled.
func (ExecRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Dir = inv.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	res.ExitCode = -1
	return res, fmt.Errorf("%w: %s: %w", ErrStartFailed, inv.Path, err)
}

// LookPath searches PATH for an executable.
func (ExecRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Probe runs a tool with probe arguments (e.g. `dot -V`) and reports whether
// it is present and exits cleanly.
func Probe(ctx context.Context, r Runner, path string, args ...string) error {
	if _, err := r.LookPath(path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStartFailed, path, err)
	}
	res, err := r.Run(ctx, Invocation{Path: path, Args: args})
	if err != nil {
		return err
	}
	if !res.Success() {
		return fmt.Errorf("%s exited with status %d: %s", path, res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}
	return nil
}
