package config

import (
	"slices"
	"strings"

	derrors "git.home.luguber.info/inful/diagramgen/internal/errors"
)

// EmbeddedFormats lists the image formats the embedded layout backend can produce.
var EmbeddedFormats = []string{"svg", "png", "jpg"}

// Validate checks a configuration with defaults already applied.
func Validate(cfg *Config) error {
	switch cfg.Layout.Backend {
	case LayoutExec, LayoutEmbedded:
	default:
		return derrors.ValidationFailed("layout.backend", "must be exec or embedded, got "+string(cfg.Layout.Backend))
	}
	if strings.ContainsAny(cfg.Layout.Format, `/\. `) {
		return derrors.ValidationFailed("layout.format", "must be a bare format name such as svg")
	}
	if cfg.Layout.Format == "dot" {
		return derrors.ValidationFailed("layout.format", "dot would overwrite the graph description")
	}
	if cfg.Layout.Backend == LayoutEmbedded && !slices.Contains(EmbeddedFormats, cfg.Layout.Format) {
		return derrors.ValidationFailed("layout.format", "embedded backend supports "+strings.Join(EmbeddedFormats, ", "))
	}
	if !strings.HasPrefix(cfg.Snippets.Extension, ".") {
		return derrors.ValidationFailed("snippets.extension", "must start with a dot")
	}
	return nil
}
