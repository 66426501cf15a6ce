package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/diagramgen/internal/logfields"
	"git.home.luguber.info/inful/diagramgen/internal/snippet"
)

// Stage names the step of the pipeline an Outcome failed in.
type Stage string

const (
	StageCompile Stage = "compile"
	StageWrite   Stage = "write"
	StageLayout  Stage = "layout"
)

// DescriptionExt is the extension of the intermediate Graphviz description.
const DescriptionExt = "dot"

// Outcome reports what happened to one snippet.
type Outcome struct {
	Snippet         snippet.Snippet
	Name            string // case-preserved artifact name
	DescriptionPath string
	ImagePath       string
	Stage           Stage // failing stage; empty on success
	Err             error
	Diagnostics     string // captured tool error output on failure
	Duration        time.Duration
}

// OK reports whether both stages succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Pipeline renders snippets into OutputDir.
type Pipeline struct {
	compiler    Compiler
	layout      Layout
	outputDir   string
	imageFormat string
	pattern     snippet.Pattern
	out         io.Writer
	logger      *slog.Logger
}

// NewPipeline creates a pipeline writing `<stem>.dot` and `<stem>.<imageFormat>` into outputDir.
func NewPipeline(compiler Compiler, layout Layout, outputDir, imageFormat string, pattern snippet.Pattern) *Pipeline {
	return &Pipeline{
		compiler:    compiler,
		layout:      layout,
		outputDir:   outputDir,
		imageFormat: imageFormat,
		pattern:     pattern,
		out:         io.Discard,
		logger:      slog.Default(),
	}
}

// WithOutput sets the writer receiving user-facing progress lines.
func (p *Pipeline) WithOutput(w io.Writer) *Pipeline {
	if w != nil {
		p.out = w
	}
	return p
}

// WithLogger sets a custom logger.
func (p *Pipeline) WithLogger(logger *slog.Logger) *Pipeline {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// Paths returns the description and image paths for a resolved artifact name.
func (p *Pipeline) Paths(name string) (desc, image string) {
	stem := snippet.ArtifactStem(name)
	return filepath.Join(p.outputDir, stem+"."+DescriptionExt),
		filepath.Join(p.outputDir, stem+"."+p.imageFormat)
}

// Render runs both stages for s. It never returns early with an error; the
// failure, if any, is carried in the Outcome.
func (p *Pipeline) Render(ctx context.Context, s snippet.Snippet) Outcome {
	start := time.Now()
	name := p.pattern.ArtifactName(s)
	desc, image := p.Paths(name)
	o := Outcome{Snippet: s, Name: name, DescriptionPath: desc, ImagePath: image}
	log := p.logger.With(logfields.Snippet(s.Path), logfields.Artifact(name))

	p.printf("Processing %s -> %s...\n", s.FileName(), name)

	dot, diag, err := p.compiler.Compile(ctx, s.Path)
	if err != nil {
		p.printf("  ERROR: typestates CLI failed: %s\n", diag)
		log.Debug("Compile stage failed", logfields.Stderr(diag), logfields.Error(err))
		return p.fail(o, StageCompile, err, diag, start)
	}

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		p.printf("  ERROR: %v\n", err)
		return p.fail(o, StageWrite, fmt.Errorf("create output directory: %w", err), err.Error(), start)
	}
	if err := os.WriteFile(desc, dot, 0o644); err != nil {
		p.printf("  ERROR: %v\n", err)
		return p.fail(o, StageWrite, fmt.Errorf("write description: %w", err), err.Error(), start)
	}
	p.printf("  Created: %s\n", desc)

	if diag, err := p.layout.Render(ctx, desc, image); err != nil {
		if isNotFound(err) {
			p.printf("  ERROR: %s\n", diag)
		} else {
			p.printf("  ERROR: Graphviz failed: %s\n", diag)
		}
		log.Debug("Layout stage failed", logfields.Tool(p.layout.Name()), logfields.Stderr(diag), logfields.Error(err))
		return p.fail(o, StageLayout, err, diag, start)
	}
	p.printf("  Created: %s\n", image)

	o.Duration = time.Since(start)
	log.Debug("Diagram rendered", logfields.Path(image), logfields.DurationMS(float64(o.Duration.Microseconds())/1000))
	return o
}

func (p *Pipeline) fail(o Outcome, stage Stage, err error, diag string, start time.Time) Outcome {
	o.Stage = stage
	o.Err = err
	o.Diagnostics = diag
	o.Duration = time.Since(start)
	return o
}

func (p *Pipeline) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
