package batch

import "errors"

var (
	// ErrPartialFailure reports that at least one snippet failed to render.
	ErrPartialFailure = errors.New("some diagrams failed to render")
	// ErrSnippetsDirMissing reports a missing snippets directory.
	ErrSnippetsDirMissing = errors.New("snippets directory not found")
	// ErrToolMissing reports a missing typestates compiler binary.
	ErrToolMissing = errors.New("typestates CLI not found")
	// ErrLayoutToolMissing reports that the Graphviz layout executable is unavailable.
	ErrLayoutToolMissing = errors.New("graphviz layout tool not found")
)
