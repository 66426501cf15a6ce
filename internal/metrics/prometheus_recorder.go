package metrics

import (
	"fmt"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	reg             *prom.Registry
	runDuration     *prom.HistogramVec
	runOutcomes     *prom.CounterVec
	snippetDuration prom.Histogram
	snippetResults  *prom.CounterVec
	lastSucceeded   prom.Gauge
	lastAttempted   prom.Gauge
	lastRunTime     prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.runDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "diagramgen",
			Name:      "run_duration_seconds",
			Help:      "Duration of diagram generation runs",
			Buckets:   prom.DefBuckets,
		}, []string{"mode"})
		pr.runOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "diagramgen",
			Name:      "run_outcomes_total",
			Help:      "Diagram generation runs by final status",
		}, []string{"mode", "outcome"})
		pr.snippetDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "diagramgen",
			Name:      "snippet_render_duration_seconds",
			Help:      "Duration of rendering one snippet through both stages",
			Buckets:   prom.DefBuckets,
		})
		pr.snippetResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "diagramgen",
			Name:      "snippet_results_total",
			Help:      "Snippet render results by outcome",
		}, []string{"result"})
		pr.lastSucceeded = prom.NewGauge(prom.GaugeOpts{
			Namespace: "diagramgen",
			Name:      "last_run_succeeded",
			Help:      "Diagrams rendered successfully in the last run",
		})
		pr.lastAttempted = prom.NewGauge(prom.GaugeOpts{
			Namespace: "diagramgen",
			Name:      "last_run_attempted",
			Help:      "Diagrams attempted in the last run",
		})
		pr.lastRunTime = prom.NewGauge(prom.GaugeOpts{
			Namespace: "diagramgen",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished rendering",
		})
		reg.MustRegister(pr.runDuration, pr.runOutcomes, pr.snippetDuration, pr.snippetResults,
			pr.lastSucceeded, pr.lastAttempted, pr.lastRunTime)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveRunDuration(mode string, d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(mode string, outcome RunOutcomeLabel) {
	if p == nil || p.runOutcomes == nil {
		return
	}
	p.runOutcomes.WithLabelValues(mode, string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveSnippetDuration(d time.Duration) {
	if p == nil || p.snippetDuration == nil {
		return
	}
	p.snippetDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncSnippetResult(result ResultLabel) {
	if p == nil || p.snippetResults == nil {
		return
	}
	p.snippetResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetLastRun(succeeded, attempted int) {
	if p == nil || p.lastSucceeded == nil {
		return
	}
	p.lastSucceeded.Set(float64(succeeded))
	p.lastAttempted.Set(float64(attempted))
	p.lastRunTime.SetToCurrentTime()
}

// WriteTextfile writes the registry in the text exposition format, suitable
// for the node_exporter textfile collector. The write is atomic.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.reg == nil {
		return nil
	}
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
