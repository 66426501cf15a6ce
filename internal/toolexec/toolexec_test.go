package toolexec

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunnerCapturesOutput(t *testing.T) {
	requireShell(t)
	res, err := ExecRunner{}.Run(context.Background(), Invocation{
		Path: "sh",
		Args: []string{"-c", "printf 'digraph {}'; printf 'warn' >&2"},
	})
	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Equal(t, "digraph {}", string(res.Stdout))
	assert.Equal(t, "warn", string(res.Stderr))
}

func TestExecRunnerNonZeroExitIsNotAnError(t *testing.T) {
	requireShell(t)
	res, err := ExecRunner{}.Run(context.Background(), Invocation{
		Path: "sh",
		Args: []string{"-c", "echo 'parse error' >&2; exit 3"},
	})
	require.NoError(t, err)
	assert.False(t, res.Success())
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "parse error\n", string(res.Stderr))
}

func TestExecRunnerWorkingDir(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	res, err := ExecRunner{}.Run(context.Background(), Invocation{Path: "sh", Args: []string{"-c", "pwd -P"}, Dir: dir})
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want+"\n", string(res.Stdout))
}

func TestExecRunnerMissingExecutable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-tool")
	res, err := ExecRunner{}.Run(context.Background(), Invocation{Path: missing})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStartFailed))
	assert.Equal(t, -1, res.ExitCode)
}

func TestInvocationString(t *testing.T) {
	inv := Invocation{Path: "dot", Args: []string{"-Tsvg", "a.dot", "-o", "a.svg"}}
	assert.Equal(t, "dot -Tsvg a.dot -o a.svg", inv.String())
	assert.Equal(t, "dot", Invocation{Path: "dot"}.String())
}

func TestProbe(t *testing.T) {
	requireShell(t)
	ctx := context.Background()
	require.NoError(t, Probe(ctx, ExecRunner{}, "sh", "-c", "exit 0"))
	require.Error(t, Probe(ctx, ExecRunner{}, "sh", "-c", "exit 1"))

	err := Probe(ctx, ExecRunner{}, "definitely-not-a-real-tool-xyz", "-V")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStartFailed))
}
