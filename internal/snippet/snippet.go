package snippet

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Snippet is one typestate source file as read at the start of a batch run.
type Snippet struct {
	Path    string
	ModTime time.Time
	Content string
}

// FileName returns the base name of the snippet file.
func (s Snippet) FileName() string { return filepath.Base(s.Path) }

// FileStem returns the base name without its extension.
func (s Snippet) FileStem() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Pattern describes the naming convention of snippet files: `*<Suffix><Ext>`.
type Pattern struct {
	Suffix string // "_typestate"
	Ext    string // ".nim"
}

// DefaultPattern matches `*_typestate.nim`.
var DefaultPattern = Pattern{Suffix: "_typestate", Ext: ".nim"}

// Glob returns the shell-style form of the pattern, used in log and user messages.
func (p Pattern) Glob() string { return "*" + p.Suffix + p.Ext }

// Matches reports whether a file base name follows the convention.
func (p Pattern) Matches(base string) bool {
	return strings.HasSuffix(base, p.Suffix+p.Ext)
}

// Discover reads every file directly inside dir that matches the pattern and
// returns them sorted lexicographically by path. Subdirectories are not
// searched. A missing dir is reported as an error satisfying os.IsNotExist.
func Discover(dir string, p Pattern) ([]Snippet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []Snippet
	for _, e := range entries {
		if e.IsDir() || !p.Matches(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		s, err := Read(path)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Read loads a single snippet file.
func Read(path string) (Snippet, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Snippet{}, fmt.Errorf("stat snippet: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Snippet{}, fmt.Errorf("read snippet: %w", err)
	}
	return Snippet{Path: path, ModTime: info.ModTime(), Content: string(data)}, nil
}
