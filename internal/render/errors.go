package render

import "errors"

var (
	// ErrCompileFailed indicates the compiler tool could not run or exited non-zero.
	ErrCompileFailed = errors.New("typestates CLI failed")
	// ErrLayoutFailed indicates the layout step exited non-zero or produced no image.
	ErrLayoutFailed = errors.New("graphviz failed")
	// ErrLayoutNotFound indicates the layout executable is not on PATH.
	ErrLayoutNotFound = errors.New("layout command not found")
	// ErrUnsupportedFormat indicates the embedded layout cannot produce the requested format.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

func isNotFound(err error) bool { return errors.Is(err, ErrLayoutNotFound) }
