package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveRunDuration("direct", 500*time.Millisecond)
	pr.IncRunOutcome("direct", OutcomePartial)
	pr.ObserveSnippetDuration(150 * time.Millisecond)
	pr.IncSnippetResult(ResultSuccess)
	pr.IncSnippetResult(ResultSuccess)
	pr.IncSnippetResult(ResultLayoutFailed)
	pr.SetLastRun(2, 3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}

	if got := testutil.ToFloat64(pr.snippetResults.WithLabelValues(string(ResultSuccess))); got != 2 {
		t.Errorf("success results = %v, want 2", got)
	}
	if got := testutil.ToFloat64(pr.runOutcomes.WithLabelValues("direct", string(OutcomePartial))); got != 1 {
		t.Errorf("partial outcomes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pr.lastAttempted); got != 3 {
		t.Errorf("last attempted = %v, want 3", got)
	}
}

func TestPrometheusRecorderWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.SetLastRun(1, 1)

	path := filepath.Join(t.TempDir(), "diagramgen.prom")
	if err := pr.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "diagramgen_last_run_succeeded 1") {
		t.Errorf("textfile missing gauge:\n%s", data)
	}
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncSnippetResult(ResultSuccess)
	pr.SetLastRun(1, 1)
	if err := pr.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Fatalf("nil recorder WriteTextfile: %v", err)
	}
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveRunDuration("hook", time.Second)
	r.IncRunOutcome("hook", OutcomeSkipped)
	r.ObserveSnippetDuration(time.Second)
	r.IncSnippetResult(ResultCompileFailed)
	r.SetLastRun(0, 0)
}
