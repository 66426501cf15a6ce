package batch

import (
	"time"

	"git.home.luguber.info/inful/diagramgen/internal/render"
)

// Mode names the entry point that produced a Result.
type Mode string

const (
	ModeDirect Mode = "direct"
	ModeHook   Mode = "hook"
)

// SkipReason explains why a hook run rendered nothing.
type SkipReason string

const (
	SkipDisabled          SkipReason = "disabled"
	SkipNoSnippetsDir     SkipReason = "snippets_dir_missing"
	SkipNoSnippets        SkipReason = "no_snippets"
	SkipToolMissing       SkipReason = "tool_missing"
	SkipUpToDate          SkipReason = "up_to_date"
	SkipLayoutToolMissing SkipReason = "layout_tool_missing"
)

// Result summarizes one batch run.
type Result struct {
	RunID     string
	Mode      Mode
	Succeeded int
	Attempted int

	// Skipped is set when the run stopped before rendering; Reason says why.
	Skipped bool
	Reason  SkipReason

	// Outcomes holds one entry per attempted snippet in processing order.
	Outcomes []render.Outcome
	Duration time.Duration
}

// OK reports whether every attempted snippet rendered. Skipped runs are OK.
func (r Result) OK() bool { return r.Succeeded == r.Attempted }

// Failed returns the outcomes of snippets that did not render.
func (r Result) Failed() []render.Outcome {
	var out []render.Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}
