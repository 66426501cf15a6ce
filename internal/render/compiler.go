package render

import (
	"context"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/diagramgen/internal/toolexec"
)

// Compiler invokes `<Binary> <Subcommand> <snippet>` and returns its stdout.
type Compiler struct {
	Binary     string
	Subcommand string
	Runner     toolexec.Runner
}

// Compile runs the compiler on snippetPath. On failure the returned string
// holds the tool's diagnostic output.
func (c Compiler) Compile(ctx context.Context, snippetPath string) ([]byte, string, error) {
	inv := toolexec.Invocation{Path: c.Binary, Args: []string{c.Subcommand, snippetPath}}
	res, err := c.Runner.Run(ctx, inv)
	if err != nil {
		return nil, err.Error(), fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}
	if !res.Success() {
		stderr := strings.TrimRight(string(res.Stderr), "\n")
		return nil, stderr, fmt.Errorf("%w: exit status %d", ErrCompileFailed, res.ExitCode)
	}
	return res.Stdout, "", nil
}
