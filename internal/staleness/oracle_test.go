package staleness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/diagramgen/internal/snippet"
)

type fixture struct {
	t        *testing.T
	snippets string
	output   string
	tool     string
	base     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		t:        t,
		snippets: filepath.Join(root, "snippets"),
		output:   filepath.Join(root, "generated"),
		tool:     filepath.Join(root, "bin", "typestates"),
		base:     time.Now().Add(-time.Hour).Truncate(time.Second),
	}
	require.NoError(t, os.MkdirAll(f.snippets, 0o755))
	require.NoError(t, os.MkdirAll(f.output, 0o755))
	return f
}

// write creates path with content and sets its mtime to base+offset.
func (f *fixture) write(path, content string, offset time.Duration) {
	f.t.Helper()
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o644))
	ts := f.base.Add(offset)
	require.NoError(f.t, os.Chtimes(path, ts, ts))
}

func (f *fixture) discover() []snippet.Snippet {
	f.t.Helper()
	s, err := snippet.Discover(f.snippets, snippet.DefaultPattern)
	require.NoError(f.t, err)
	return s
}

func (f *fixture) oracle() *Oracle {
	return New(f.output, f.tool, "svg", snippet.DefaultPattern)
}

func TestCheckMissingImage(t *testing.T) {
	f := newFixture(t)
	f.write(filepath.Join(f.snippets, "payment_typestate.nim"), "typestate Payment:\n", 0)

	d, err := f.oracle().Check(f.discover())
	require.NoError(t, err)
	assert.True(t, d.Regenerate)
	assert.Equal(t, ReasonImageMissing, d.Reason)
	assert.Equal(t, filepath.Join(f.output, "payment.svg"), d.Path)
}

func TestCheckMissingOutputDirectory(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.RemoveAll(f.output))
	f.write(filepath.Join(f.snippets, "door_typestate.nim"), "typestate Door:\n", 0)

	d, err := f.oracle().Check(f.discover())
	require.NoError(t, err)
	assert.True(t, d.Regenerate)
	assert.Equal(t, ReasonImageMissing, d.Reason)
}

func TestCheckUpToDate(t *testing.T) {
	f := newFixture(t)
	f.write(f.tool, "#!/bin/sh\n", 0)
	f.write(filepath.Join(f.snippets, "payment_typestate.nim"), "typestate Payment:\n", time.Minute)
	f.write(filepath.Join(f.snippets, "widget_typestate.nim"), "no declaration\n", time.Minute)
	f.write(filepath.Join(f.output, "payment.svg"), "<svg/>", 2*time.Minute)
	f.write(filepath.Join(f.output, "widget.svg"), "<svg/>", 2*time.Minute)

	d, err := f.oracle().Check(f.discover())
	require.NoError(t, err)
	assert.False(t, d.Regenerate)
	assert.Equal(t, ReasonUpToDate, d.Reason)
}

func TestCheckEqualTimestampsAreUpToDate(t *testing.T) {
	f := newFixture(t)
	f.write(f.tool, "#!/bin/sh\n", time.Minute)
	f.write(filepath.Join(f.snippets, "payment_typestate.nim"), "typestate Payment:\n", time.Minute)
	f.write(filepath.Join(f.output, "payment.svg"), "<svg/>", time.Minute)

	d, err := f.oracle().Check(f.discover())
	require.NoError(t, err)
	assert.False(t, d.Regenerate)
}

func TestCheckSourceNewer(t *testing.T) {
	f := newFixture(t)
	f.write(filepath.Join(f.output, "payment.svg"), "<svg/>", 0)
	f.write(filepath.Join(f.snippets, "payment_typestate.nim"), "typestate Payment:\n", time.Second)

	d, err := f.oracle().Check(f.discover())
	require.NoError(t, err)
	assert.True(t, d.Regenerate)
	assert.Equal(t, ReasonSourceNewer, d.Reason)
	assert.Equal(t, filepath.Join(f.snippets, "payment_typestate.nim"), d.Path)
}

func TestCheckToolNewerThanUnrelatedImage(t *testing.T) {
	f := newFixture(t)
	f.write(filepath.Join(f.snippets, "payment_typestate.nim"), "typestate Payment:\n", 0)
	f.write(filepath.Join(f.output, "payment.svg"), "<svg/>", 3*time.Minute)
	// An image left over from a removed snippet still participates.
	f.write(filepath.Join(f.output, "legacy.svg"), "<svg/>", time.Minute)
	f.write(filepath.Join(f.output, "legacy.dot"), "digraph {}", 0)
	f.write(f.tool, "#!/bin/sh\n", 2*time.Minute)

	d, err := f.oracle().Check(f.discover())
	require.NoError(t, err)
	assert.True(t, d.Regenerate)
	assert.Equal(t, ReasonToolNewer, d.Reason)
	assert.Equal(t, filepath.Join(f.output, "legacy.svg"), d.Path)
}

func TestCheckMissingToolIsNotStale(t *testing.T) {
	f := newFixture(t)
	f.write(filepath.Join(f.snippets, "payment_typestate.nim"), "typestate Payment:\n", 0)
	f.write(filepath.Join(f.output, "payment.svg"), "<svg/>", time.Minute)

	d, err := f.oracle().Check(f.discover())
	require.NoError(t, err)
	assert.False(t, d.Regenerate)
}

func TestCheckUsesDeclaredName(t *testing.T) {
	f := newFixture(t)
	f.write(filepath.Join(f.snippets, "box_typestate.nim"), "typestate Container[T]:\n", 0)
	f.write(filepath.Join(f.output, "container.svg"), "<svg/>", time.Minute)

	d, err := f.oracle().Check(f.discover())
	require.NoError(t, err)
	assert.False(t, d.Regenerate, "image is named after the declared typestate, not the file stem")
}

func TestCheckNoSnippets(t *testing.T) {
	f := newFixture(t)
	d, err := f.oracle().Check(nil)
	require.NoError(t, err)
	assert.False(t, d.Regenerate)
}
