package snippet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscoverSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "zeta_typestate.nim"), "typestate Zeta:\n")
	writeFile(t, filepath.Join(dir, "alpha_typestate.nim"), "typestate Alpha:\n")
	writeFile(t, filepath.Join(dir, "readme.md"), "# not a snippet")
	writeFile(t, filepath.Join(dir, "helper.nim"), "proc x() = discard")
	writeFile(t, filepath.Join(dir, "nested", "deep_typestate.nim"), "typestate Deep:\n")

	got, err := Discover(dir, DefaultPattern)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, filepath.Join(dir, "alpha_typestate.nim"), got[0].Path)
	assert.Equal(t, filepath.Join(dir, "zeta_typestate.nim"), got[1].Path)
	assert.Equal(t, "typestate Alpha:\n", got[0].Content)
	assert.False(t, got[0].ModTime.IsZero())
	assert.Equal(t, "alpha_typestate", got[0].FileStem())
	assert.Equal(t, "alpha_typestate.nim", got[0].FileName())
}

func TestDiscoverEmptyDirectory(t *testing.T) {
	got, err := Discover(t.TempDir(), DefaultPattern)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscoverMissingDirectory(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), DefaultPattern)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestPatternGlob(t *testing.T) {
	assert.Equal(t, "*_typestate.nim", DefaultPattern.Glob())
	assert.True(t, DefaultPattern.Matches("door_typestate.nim"))
	assert.False(t, DefaultPattern.Matches("door_typestate.nim.bak"))
}
