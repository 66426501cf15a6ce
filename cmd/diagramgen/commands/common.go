package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/diagramgen/internal/batch"
	"git.home.luguber.info/inful/diagramgen/internal/config"
	"git.home.luguber.info/inful/diagramgen/internal/metrics"
	"git.home.luguber.info/inful/diagramgen/internal/toolexec"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	// Out receives progress lines; nil means stdout.
	Out io.Writer
	// Tools runs the external tools; nil means real subprocesses.
	Tools toolexec.Runner
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path (optional)" default:"diagramgen.yaml"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics in text format to this file after each run"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Render every snippet unconditionally"`
	Hook     HookCmd     `cmd:"" help:"Build hook: regenerate only stale diagrams, never fail the build"`
	Watch    WatchCmd    `cmd:"" help:"Re-run the build hook whenever snippets or the compiler change"`
	Check    CheckCmd    `cmd:"" help:"Report whether the diagrams are stale (exit 1 when stale)"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`

	level slog.LevelVar
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	c.level.Set(parseLogLevel(c.Verbose))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &c.level}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel honours --verbose first, then DIAGRAMGEN_LOG_LEVEL.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	if v := os.Getenv(config.EnvLogLevel); v != "" {
		return config.NormalizeLogLevel(v).SlogLevel()
	}
	return slog.LevelInfo
}

// Overrides are per-command flags that take precedence over the config file.
type Overrides struct {
	SnippetsDir string `name:"snippets-dir" help:"Directory containing typestate snippets"`
	OutputDir   string `name:"output-dir" short:"o" help:"Directory for generated diagrams"`
	Tool        string `name:"tool" help:"Path to the typestates compiler binary"`
	Format      string `name:"format" help:"Image format passed to Graphviz (e.g. svg, png)"`
	Layout      string `name:"layout" help:"Layout backend: exec (Graphviz binary) or embedded"`
}

func (o Overrides) apply(cfg *config.Config) error {
	if o.SnippetsDir != "" {
		cfg.Snippets.Directory = o.SnippetsDir
	}
	if o.OutputDir != "" {
		cfg.Output.Directory = o.OutputDir
	}
	if o.Tool != "" {
		cfg.Compiler.Binary = o.Tool
	}
	if o.Format != "" {
		cfg.Layout.Format = o.Format
	}
	if o.Layout != "" {
		cfg.Layout.Backend = config.LayoutBackend(o.Layout)
	}
	return config.Validate(cfg)
}

// loadConfig reads the optional config file and applies flag overrides. A
// log level from the file applies unless --verbose or the environment set one.
func loadConfig(root *CLI, o Overrides) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return nil, err
	}
	if err := o.apply(cfg); err != nil {
		return nil, err
	}
	if !root.Verbose && os.Getenv(config.EnvLogLevel) == "" {
		root.level.Set(cfg.Logging.Level.SlogLevel())
	}
	return cfg, nil
}

// metricsSink owns the Prometheus registry behind --metrics-file.
type metricsSink struct {
	path     string
	recorder *metrics.PrometheusRecorder
}

func newMetricsSink(path string) *metricsSink {
	if path == "" {
		return &metricsSink{}
	}
	return &metricsSink{path: path, recorder: metrics.NewPrometheusRecorder(prom.NewRegistry())}
}

func (m *metricsSink) Recorder() metrics.Recorder {
	if m.recorder == nil {
		return metrics.NoopRecorder{}
	}
	return m.recorder
}

// Flush writes the textfile; failures are logged and never change the exit status.
func (m *metricsSink) Flush(logger *slog.Logger) {
	if m.path == "" {
		return
	}
	if err := m.recorder.WriteTextfile(m.path); err != nil {
		logger.Warn("Failed to write metrics file", "path", m.path, "error", err)
	}
}

func newRunner(g *Global, cfg *config.Config, sink *metricsSink) *batch.Runner {
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return batch.New(cfg).
		WithLogger(logger).
		WithOutput(g.Out).
		WithToolRunner(g.Tools).
		WithRecorder(sink.Recorder())
}
