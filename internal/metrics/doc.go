// Package metrics provides counters and histograms for diagram generation runs.
//
// Components hold a Recorder and default to NoopRecorder, so no nil checks
// are needed at call sites:
//
//	type Runner struct {
//	    recorder metrics.Recorder
//	}
//
//	func New() *Runner {
//	    return &Runner{
//	        recorder: metrics.NoopRecorder{}, // Default: no metrics
//	    }
//	}
//
// To enable metrics, swap NoopRecorder for PrometheusRecorder:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	runner := batch.New(cfg).WithRecorder(recorder)
//	defer recorder.WriteTextfile(path)
//
// # Export
//
// A batch run is a short-lived process, so metrics are not served over HTTP.
// PrometheusRecorder.WriteTextfile writes the registry atomically for the
// node_exporter textfile collector.
package metrics
