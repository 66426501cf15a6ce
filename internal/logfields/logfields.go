package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeySnippet    = "snippet"
	KeyArtifact   = "artifact"
	KeyStage      = "stage"
	KeyTool       = "tool"
	KeyPath       = "path"
	KeyReason     = "reason"
	KeyCount      = "count"
	KeySucceeded  = "succeeded"
	KeyAttempted  = "attempted"
	KeyDurationMS = "duration_ms"
	KeyStderr     = "stderr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Snippet(p string) slog.Attr      { return slog.String(KeySnippet, p) }
func Artifact(name string) slog.Attr  { return slog.String(KeyArtifact, name) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Tool(path string) slog.Attr      { return slog.String(KeyTool, path) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Succeeded(n int) slog.Attr       { return slog.Int(KeySucceeded, n) }
func Attempted(n int) slog.Attr       { return slog.Int(KeyAttempted, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Stderr(s string) slog.Attr       { return slog.String(KeyStderr, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
