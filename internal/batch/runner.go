package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/diagramgen/internal/config"
	derrors "git.home.luguber.info/inful/diagramgen/internal/errors"
	"git.home.luguber.info/inful/diagramgen/internal/logfields"
	"git.home.luguber.info/inful/diagramgen/internal/metrics"
	"git.home.luguber.info/inful/diagramgen/internal/render"
	"git.home.luguber.info/inful/diagramgen/internal/snippet"
	"git.home.luguber.info/inful/diagramgen/internal/staleness"
	"git.home.luguber.info/inful/diagramgen/internal/toolexec"
)

// Runner executes batch runs for one configuration. Runs are sequential; a
// Runner must not be used by two goroutines at once.
type Runner struct {
	cfg      *config.Config
	tools    toolexec.Runner
	recorder metrics.Recorder
	logger   *slog.Logger
	out      io.Writer
}

// New creates a runner spawning real processes and printing progress to stdout.
func New(cfg *config.Config) *Runner {
	return &Runner{
		cfg:      cfg,
		tools:    toolexec.ExecRunner{},
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		out:      os.Stdout,
	}
}

// WithRecorder sets the metrics recorder.
func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	if rec != nil {
		r.recorder = rec
	}
	return r
}

// WithLogger sets a custom logger.
func (r *Runner) WithLogger(logger *slog.Logger) *Runner {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// WithOutput sets the writer receiving user-facing progress lines.
func (r *Runner) WithOutput(w io.Writer) *Runner {
	if w != nil {
		r.out = w
	}
	return r
}

// WithToolRunner replaces the process runner used for both tools.
func (r *Runner) WithToolRunner(tools toolexec.Runner) *Runner {
	if tools != nil {
		r.tools = tools
	}
	return r
}

func (r *Runner) pattern() snippet.Pattern {
	return snippet.Pattern{Suffix: r.cfg.Snippets.Suffix, Ext: r.cfg.Snippets.Extension}
}

func (r *Runner) oracle(logger *slog.Logger) *staleness.Oracle {
	return staleness.New(r.cfg.Output.Directory, r.cfg.Compiler.Binary, r.cfg.Layout.Format, r.pattern()).
		WithLogger(logger)
}

func (r *Runner) layout() render.Layout {
	if r.cfg.Layout.Backend == config.LayoutEmbedded {
		return render.EmbeddedLayout{Format: r.cfg.Layout.Format}
	}
	return render.ExecLayout{Binary: r.cfg.Layout.Binary, Format: r.cfg.Layout.Format, Runner: r.tools}
}

func (r *Runner) pipeline(logger *slog.Logger) *render.Pipeline {
	compiler := render.Compiler{
		Binary:     r.cfg.Compiler.Binary,
		Subcommand: r.cfg.Compiler.Subcommand,
		Runner:     r.tools,
	}
	return render.NewPipeline(compiler, r.layout(), r.cfg.Output.Directory, r.cfg.Layout.Format, r.pattern()).
		WithOutput(r.out).
		WithLogger(logger)
}

// layoutAvailable checks the layout backend. With probe set the executable
// must also answer `-V`, which catches broken installations.
func (r *Runner) layoutAvailable(ctx context.Context, probe bool) error {
	if r.cfg.Layout.Backend == config.LayoutEmbedded {
		return nil
	}
	if probe {
		return toolexec.Probe(ctx, r.tools, r.cfg.Layout.Binary, "-V")
	}
	_, err := r.tools.LookPath(r.cfg.Layout.Binary)
	return err
}

func (r *Runner) begin(mode Mode) (Result, *slog.Logger, time.Time) {
	id := uuid.NewString()
	return Result{RunID: id, Mode: mode}, r.logger.With(logfields.RunID(id)), time.Now()
}

func (r *Runner) finish(res *Result, start time.Time, outcome metrics.RunOutcomeLabel) {
	res.Duration = time.Since(start)
	r.recorder.ObserveRunDuration(string(res.Mode), res.Duration)
	r.recorder.IncRunOutcome(string(res.Mode), outcome)
}

func (r *Runner) skip(res *Result, start time.Time, reason SkipReason) (Result, error) {
	res.Skipped = true
	res.Reason = reason
	r.finish(res, start, metrics.OutcomeSkipped)
	return *res, nil
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// RunDirect renders every snippet unconditionally. Missing prerequisites are
// config errors; any failed snippet makes the run return an error wrapping
// ErrPartialFailure after all snippets were attempted.
func (r *Runner) RunDirect(ctx context.Context) (Result, error) {
	res, log, start := r.begin(ModeDirect)
	fail := func(err error) (Result, error) {
		r.finish(&res, start, metrics.OutcomeFailed)
		return res, err
	}

	dir := r.cfg.Snippets.Directory
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fail(derrors.MissingPrerequisite("Snippets directory", dir, ErrSnippetsDirMissing))
		}
		return fail(derrors.FileSystemError("stat", dir, err))
	}

	if err := os.MkdirAll(r.cfg.Output.Directory, 0o755); err != nil {
		return fail(derrors.FileSystemError("create output directory", r.cfg.Output.Directory, err))
	}

	if _, err := os.Stat(r.cfg.Compiler.Binary); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fail(derrors.MissingPrerequisite("typestates CLI", r.cfg.Compiler.Binary, ErrToolMissing).
				WithContext("hint", "run 'nimble build' first"))
		}
		return fail(derrors.FileSystemError("stat", r.cfg.Compiler.Binary, err))
	}

	snippets, err := snippet.Discover(dir, r.pattern())
	if err != nil {
		return fail(derrors.FileSystemError("discover snippets", dir, err))
	}
	if len(snippets) == 0 {
		r.printf("WARNING: No %s files found in %s\n", r.pattern().Glob(), dir)
		r.printf("\nGenerated 0/0 diagrams\n")
		r.recorder.SetLastRun(0, 0)
		r.finish(&res, start, metrics.OutcomeSuccess)
		return res, nil
	}

	if err := r.layoutAvailable(ctx, false); err != nil {
		return fail(derrors.MissingPrerequisite("Graphviz '"+r.cfg.Layout.Binary+"' command", r.cfg.Layout.Binary,
			fmt.Errorf("%w: %w", ErrLayoutToolMissing, err)).
			WithContext("hint", "install graphviz"))
	}

	r.renderAll(ctx, log, snippets, &res)
	r.printf("\nGenerated %d/%d diagrams\n", res.Succeeded, res.Attempted)

	if !res.OK() {
		r.finish(&res, start, metrics.OutcomePartial)
		return res, derrors.PartialFailure(res.Succeeded, res.Attempted, ErrPartialFailure)
	}
	r.finish(&res, start, metrics.OutcomeSuccess)
	return res, nil
}

// RunHook is the build hook entry point. It regenerates only when the
// diagrams are stale or Force is set, and reports every problem through the
// log instead of an error. Only unexpected filesystem errors are returned.
func (r *Runner) RunHook(ctx context.Context) (Result, error) {
	res, log, start := r.begin(ModeHook)

	if r.cfg.Skip {
		log.Debug("Diagram generation skipped", logfields.Reason(config.EnvSkip+" is set"))
		return r.skip(&res, start, SkipDisabled)
	}

	dir := r.cfg.Snippets.Directory
	snippets, err := snippet.Discover(dir, r.pattern())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug("No snippets directory, skipping diagram generation", logfields.Path(dir))
		return r.skip(&res, start, SkipNoSnippetsDir)
	case err != nil:
		r.finish(&res, start, metrics.OutcomeFailed)
		return res, derrors.FileSystemError("discover snippets", dir, err)
	}
	if len(snippets) == 0 {
		log.Debug("No typestate snippets found", logfields.Path(dir))
		return r.skip(&res, start, SkipNoSnippets)
	}

	tool := r.cfg.Compiler.Binary
	if _, err := os.Stat(tool); err != nil {
		log.Warn(fmt.Sprintf("typestates CLI not found at %s. Run 'nimble build' to enable diagram generation.", tool),
			logfields.Tool(tool))
		return r.skip(&res, start, SkipToolMissing)
	}

	if !r.cfg.Force {
		decision, err := r.oracle(log).Check(snippets)
		if err != nil {
			r.finish(&res, start, metrics.OutcomeFailed)
			return res, derrors.FileSystemError("check staleness", r.cfg.Output.Directory, err)
		}
		if !decision.Regenerate {
			log.Debug("Diagrams are up to date")
			return r.skip(&res, start, SkipUpToDate)
		}
	}

	if err := r.layoutAvailable(ctx, true); err != nil {
		log.Warn("Graphviz 'dot' not found. Install graphviz to enable diagram generation.",
			logfields.Tool(r.cfg.Layout.Binary), logfields.Error(err))
		return r.skip(&res, start, SkipLayoutToolMissing)
	}

	log.Info(fmt.Sprintf("Generating diagrams from %d snippets...", len(snippets)), logfields.Count(len(snippets)))
	r.renderAll(ctx, log, snippets, &res)
	r.printf("\nGenerated %d/%d diagrams\n", res.Succeeded, res.Attempted)

	if !res.OK() {
		log.Error("Diagram generation completed with failures",
			logfields.Succeeded(res.Succeeded), logfields.Attempted(res.Attempted))
		r.finish(&res, start, metrics.OutcomePartial)
		return res, nil
	}
	log.Info("Diagrams generated successfully", logfields.Count(res.Succeeded))
	r.finish(&res, start, metrics.OutcomeSuccess)
	return res, nil
}

// Check reports whether the diagrams would be regenerated by the hook,
// ignoring Force and Skip.
func (r *Runner) Check() (staleness.Decision, error) {
	dir := r.cfg.Snippets.Directory
	snippets, err := snippet.Discover(dir, r.pattern())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return staleness.Decision{}, derrors.MissingPrerequisite("Snippets directory", dir, ErrSnippetsDirMissing)
		}
		return staleness.Decision{}, derrors.FileSystemError("discover snippets", dir, err)
	}
	decision, err := r.oracle(r.logger).Check(snippets)
	if err != nil {
		return staleness.Decision{}, derrors.FileSystemError("check staleness", r.cfg.Output.Directory, err)
	}
	return decision, nil
}

// renderAll renders snippets in order and tallies the outcomes into res.
// A failing snippet never stops the loop.
func (r *Runner) renderAll(ctx context.Context, log *slog.Logger, snippets []snippet.Snippet, res *Result) {
	p := r.pipeline(log)
	seen := make(map[string]string, len(snippets))

	for _, s := range snippets {
		o := p.Render(ctx, s)
		res.Attempted++
		res.Outcomes = append(res.Outcomes, o)
		r.recorder.ObserveSnippetDuration(o.Duration)
		r.recorder.IncSnippetResult(resultLabel(o))

		if prev, dup := seen[o.ImagePath]; dup {
			log.Debug("Artifact name shared by several snippets; last one wins",
				logfields.Artifact(o.Name), logfields.Snippet(s.Path), logfields.Path(prev))
		}
		seen[o.ImagePath] = s.Path

		if o.OK() {
			res.Succeeded++
			continue
		}
		log.Debug("Snippet failed", logfields.Snippet(s.Path), logfields.Stage(string(o.Stage)), logfields.Error(o.Err))
	}
	r.recorder.SetLastRun(res.Succeeded, res.Attempted)
}

func resultLabel(o render.Outcome) metrics.ResultLabel {
	switch o.Stage {
	case "":
		return metrics.ResultSuccess
	case render.StageCompile:
		return metrics.ResultCompileFailed
	case render.StageWrite:
		return metrics.ResultWriteFailed
	default:
		return metrics.ResultLayoutFailed
	}
}
