// Package toolexectest provides a scripted toolexec.Runner for tests.
package toolexectest

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"git.home.luguber.info/inful/diagramgen/internal/toolexec"
)

// Handler produces the result of one fake invocation.
type Handler func(inv toolexec.Invocation) (toolexec.Result, error)

// Runner records every invocation and answers it through per-executable handlers.
type Runner struct {
	mu       sync.Mutex
	handlers map[string]Handler
	onPath   map[string]bool
	calls    []toolexec.Invocation
}

// New returns an empty fake runner. Unhandled executables fail to start.
func New() *Runner {
	return &Runner{handlers: map[string]Handler{}, onPath: map[string]bool{}}
}

// Handle registers the handler for an executable path and marks it as present on PATH.
func (r *Runner) Handle(path string, h Handler) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[path] = h
	r.onPath[path] = true
	return r
}

// RemoveFromPath makes LookPath fail for path while keeping its handler.
func (r *Runner) RemoveFromPath(path string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onPath[path] = false
	return r
}

// Run implements toolexec.Runner.
func (r *Runner) Run(_ context.Context, inv toolexec.Invocation) (toolexec.Result, error) {
	r.mu.Lock()
	r.calls = append(r.calls, inv)
	h, ok := r.handlers[inv.Path]
	r.mu.Unlock()
	if !ok {
		return toolexec.Result{ExitCode: -1}, fmt.Errorf("%w: %s: %w", toolexec.ErrStartFailed, inv.Path, exec.ErrNotFound)
	}
	return h(inv)
}

// LookPath implements toolexec.Runner.
func (r *Runner) LookPath(file string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.onPath[file] {
		return file, nil
	}
	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}

// Calls returns a copy of all recorded invocations in order.
func (r *Runner) Calls() []toolexec.Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]toolexec.Invocation(nil), r.calls...)
}

// CallsTo returns the recorded invocations of one executable.
func (r *Runner) CallsTo(path string) []toolexec.Invocation {
	var out []toolexec.Invocation
	for _, c := range r.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// Stdout returns a handler that succeeds with fixed standard output.
func Stdout(out string) Handler {
	return func(toolexec.Invocation) (toolexec.Result, error) {
		return toolexec.Result{Stdout: []byte(out)}, nil
	}
}

// Fail returns a handler that exits with code and stderr.
func Fail(code int, stderr string) Handler {
	return func(toolexec.Invocation) (toolexec.Result, error) {
		return toolexec.Result{ExitCode: code, Stderr: []byte(stderr)}, nil
	}
}
