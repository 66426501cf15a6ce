// Package staleness decides whether the generated diagrams of a snippet set
// must be regenerated, using filesystem modification times as the only cache.
//
// The verdict is for the whole batch: any stale image forces every snippet to
// be re-rendered. This trades precision for a policy that needs no state
// beyond the files themselves.
package staleness

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/diagramgen/internal/logfields"
	"git.home.luguber.info/inful/diagramgen/internal/snippet"
)

// Reason identifies which rule produced a Decision.
type Reason string

const (
	ReasonImageMissing Reason = "image_missing"
	ReasonSourceNewer  Reason = "source_newer"
	ReasonToolNewer    Reason = "tool_newer"
	ReasonUpToDate     Reason = "up_to_date"
)

// Decision is the whole-batch verdict of one Check.
type Decision struct {
	Regenerate bool
	Reason     Reason
	// Path is the artifact or snippet that triggered regeneration, if any.
	Path string
}

// Oracle compares snippets against their images in OutputDir and against the
// compiler tool binary at ToolPath.
type Oracle struct {
	OutputDir   string
	ToolPath    string
	ImageFormat string // image extension without dot, e.g. "svg"
	Pattern     snippet.Pattern
	logger      *slog.Logger
}

// New creates an oracle for the given output directory, tool binary and image format.
func New(outputDir, toolPath, imageFormat string, pattern snippet.Pattern) *Oracle {
	return &Oracle{
		OutputDir:   outputDir,
		ToolPath:    toolPath,
		ImageFormat: imageFormat,
		Pattern:     pattern,
		logger:      slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (o *Oracle) WithLogger(logger *slog.Logger) *Oracle {
	if logger != nil {
		o.logger = logger
	}
	return o
}

// ImagePath returns the expected image artifact of s.
func (o *Oracle) ImagePath(s snippet.Snippet) string {
	return filepath.Join(o.OutputDir, o.Pattern.ArtifactStem(s)+"."+o.ImageFormat)
}

// Check evaluates the rules in order and stops at the first that demands
// regeneration:
//
//  1. a snippet has no image;
//  2. a snippet is strictly newer than its image;
//  3. the tool binary exists and is strictly newer than any image in the
//     output directory, including images no current snippet produces.
func (o *Oracle) Check(snippets []snippet.Snippet) (Decision, error) {
	for _, s := range snippets {
		img := o.ImagePath(s)
		info, err := os.Stat(img)
		if errors.Is(err, fs.ErrNotExist) {
			return o.stale(ReasonImageMissing, img), nil
		}
		if err != nil {
			return Decision{}, fmt.Errorf("stat image: %w", err)
		}
		if s.ModTime.After(info.ModTime()) {
			return o.stale(ReasonSourceNewer, s.Path), nil
		}
	}

	toolInfo, err := os.Stat(o.ToolPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Decision{Reason: ReasonUpToDate}, nil
	case err != nil:
		return Decision{}, fmt.Errorf("stat tool: %w", err)
	}

	images, err := o.existingImages()
	if err != nil {
		return Decision{}, err
	}
	for _, img := range images {
		info, err := os.Stat(img)
		if err != nil {
			return Decision{}, fmt.Errorf("stat image: %w", err)
		}
		if toolInfo.ModTime().After(info.ModTime()) {
			return o.stale(ReasonToolNewer, img), nil
		}
	}

	return Decision{Reason: ReasonUpToDate}, nil
}

func (o *Oracle) stale(reason Reason, path string) Decision {
	o.logger.Debug("Diagrams are stale", logfields.Reason(string(reason)), logfields.Path(path))
	return Decision{Regenerate: true, Reason: reason, Path: path}
}

// existingImages lists every `*.<format>` file directly inside OutputDir.
func (o *Oracle) existingImages() ([]string, error) {
	entries, err := os.ReadDir(o.OutputDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read output directory: %w", err)
	}
	suffix := "." + o.ImageFormat
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), suffix) {
			out = append(out, filepath.Join(o.OutputDir, e.Name()))
		}
	}
	return out, nil
}
