package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-graphviz"

	"git.home.luguber.info/inful/diagramgen/internal/toolexec"
)

// Layout renders a Graphviz description file to an image file.
// On failure the returned string holds diagnostic output for the user.
type Layout interface {
	Name() string
	Render(ctx context.Context, descPath, imagePath string) (string, error)
}

// ExecLayout runs an external Graphviz binary: `<Binary> -T<Format> <desc> -o <image>`.
type ExecLayout struct {
	Binary string
	Format string
	Runner toolexec.Runner
}

func (l ExecLayout) Name() string { return l.Binary }

func (l ExecLayout) Render(ctx context.Context, descPath, imagePath string) (string, error) {
	if _, err := l.Runner.LookPath(l.Binary); err != nil {
		return fmt.Sprintf("'%s' command not found. Install graphviz.", l.Binary), fmt.Errorf("%w: %s", ErrLayoutNotFound, l.Binary)
	}
	inv := toolexec.Invocation{
		Path: l.Binary,
		Args: []string{"-T" + l.Format, descPath, "-o", imagePath},
	}
	res, err := l.Runner.Run(ctx, inv)
	if err != nil {
		return err.Error(), fmt.Errorf("%w: %w", ErrLayoutFailed, err)
	}
	if !res.Success() {
		return strings.TrimRight(string(res.Stderr), "\n"), fmt.Errorf("%w: exit status %d", ErrLayoutFailed, res.ExitCode)
	}
	return "", nil
}

// EmbeddedLayout renders in-process with the WebAssembly build of Graphviz,
// for hosts where the dot binary is not installed.
type EmbeddedLayout struct {
	Format string
}

func (EmbeddedLayout) Name() string { return "embedded" }

func (l EmbeddedLayout) Render(ctx context.Context, descPath, imagePath string) (string, error) {
	format, err := graphvizFormat(l.Format)
	if err != nil {
		return err.Error(), err
	}

	data, err := os.ReadFile(descPath)
	if err != nil {
		return err.Error(), fmt.Errorf("%w: read description: %w", ErrLayoutFailed, err)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return err.Error(), fmt.Errorf("%w: init graphviz: %w", ErrLayoutFailed, err)
	}
	defer func() { _ = gv.Close() }()

	g, err := graphviz.ParseBytes(data)
	if err != nil {
		return err.Error(), fmt.Errorf("%w: parse DOT: %w", ErrLayoutFailed, err)
	}
	defer func() { _ = g.Close() }()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return err.Error(), fmt.Errorf("%w: render: %w", ErrLayoutFailed, err)
	}
	if err := os.WriteFile(imagePath, buf.Bytes(), 0o644); err != nil {
		return err.Error(), fmt.Errorf("%w: write image: %w", ErrLayoutFailed, err)
	}
	return "", nil
}

func graphvizFormat(name string) (graphviz.Format, error) {
	switch name {
	case "svg":
		return graphviz.SVG, nil
	case "png":
		return graphviz.PNG, nil
	case "jpg":
		return graphviz.JPG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// EmbeddedFormats lists the formats EmbeddedLayout accepts.
var EmbeddedFormats = []string{"svg", "png", "jpg"}
