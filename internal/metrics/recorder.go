package metrics

import "time"

// ResultLabel enumerates per-snippet result categories for counters.
type ResultLabel string

const (
	ResultSuccess       ResultLabel = "success"
	ResultCompileFailed ResultLabel = "compile_failed"
	ResultLayoutFailed  ResultLabel = "layout_failed"
	ResultWriteFailed   ResultLabel = "write_failed"
)

// RunOutcomeLabel enumerates batch run outcomes.
type RunOutcomeLabel string

const (
	OutcomeSuccess RunOutcomeLabel = "success"
	OutcomePartial RunOutcomeLabel = "partial"
	OutcomeSkipped RunOutcomeLabel = "skipped"
	OutcomeFailed  RunOutcomeLabel = "failed"
)

// Recorder defines observability hooks for batch and per-snippet metrics.
// All methods must be safe on the NoopRecorder so injection stays optional.
type Recorder interface {
	ObserveRunDuration(mode string, d time.Duration)
	IncRunOutcome(mode string, outcome RunOutcomeLabel)
	ObserveSnippetDuration(d time.Duration)
	IncSnippetResult(result ResultLabel)
	SetLastRun(succeeded, attempted int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRunDuration(string, time.Duration) {}
func (NoopRecorder) IncRunOutcome(string, RunOutcomeLabel)    {}
func (NoopRecorder) ObserveSnippetDuration(time.Duration)     {}
func (NoopRecorder) IncSnippetResult(ResultLabel)             {}
func (NoopRecorder) SetLastRun(int, int)                      {}
