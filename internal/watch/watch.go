// Package watch re-runs diagram generation when snippets or the compiler
// binary change, the way a documentation dev server re-runs its build hooks.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/diagramgen/internal/logfields"
	"git.home.luguber.info/inful/diagramgen/internal/snippet"
)

// DefaultDebounce is the quiet window between the last change and a rerun.
const DefaultDebounce = 300 * time.Millisecond

// RunFunc performs one generation run. Its error is logged, never fatal.
type RunFunc func(ctx context.Context) error

// Options configures a Watcher.
type Options struct {
	SnippetsDir string
	ToolPath    string
	Pattern     snippet.Pattern
	Debounce    time.Duration
	// PollInterval schedules an extra run at a fixed interval; zero disables it.
	PollInterval time.Duration
}

// Watcher serializes runs: at most one in progress and one pending.
type Watcher struct {
	opts     Options
	run      RunFunc
	logger   *slog.Logger
	requests chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher calling run on every relevant change.
func New(opts Options, run RunFunc) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{
		opts:     opts,
		run:      run,
		logger:   slog.Default(),
		requests: make(chan struct{}, 1),
	}
}

// WithLogger sets a custom logger.
func (w *Watcher) WithLogger(logger *slog.Logger) *Watcher {
	if logger != nil {
		w.logger = logger
	}
	return w
}

// Trigger requests a run after the debounce window. Bursts coalesce.
func (w *Watcher) Trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, w.request)
}

func (w *Watcher) request() {
	select {
	case w.requests <- struct{}{}:
	default:
	}
}

// Run performs an initial run, then watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()
	w.addWatches(fw)

	var sched gocron.Scheduler
	if w.opts.PollInterval > 0 {
		sched, err = w.startPolling()
		if err != nil {
			return err
		}
		defer func() { _ = sched.Shutdown() }()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(ctx)
	}()

	w.request()
	w.logger.Info("Watching for snippet changes",
		logfields.Path(w.opts.SnippetsDir), logfields.Tool(w.opts.ToolPath))

	defer wg.Wait()
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			w.logger.Info("Stopping watcher")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", logfields.Error(err))
		}
	}
}

// addWatches watches the snippets directory and the directory holding the
// tool binary, since builds usually replace the binary rather than write it.
func (w *Watcher) addWatches(fw *fsnotify.Watcher) {
	dirs := []string{w.opts.SnippetsDir}
	if w.opts.ToolPath != "" {
		dirs = append(dirs, filepath.Dir(w.opts.ToolPath))
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			w.logger.Warn("watch add failed", logfields.Path(dir), logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod || !w.relevant(ev.Name) {
		return
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.Trigger()
}

// relevant reports whether a changed path can affect the generated diagrams.
func (w *Watcher) relevant(path string) bool {
	path = filepath.Clean(path)
	if w.opts.ToolPath != "" && path == filepath.Clean(w.opts.ToolPath) {
		return true
	}
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return filepath.Dir(path) == filepath.Clean(w.opts.SnippetsDir) && w.opts.Pattern.Matches(base)
}

func (w *Watcher) startPolling() (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	if _, err := s.NewJob(
		gocron.DurationJob(w.opts.PollInterval),
		gocron.NewTask(w.request),
		gocron.WithName("diagram-poll"),
	); err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create poll job: %w", err)
	}
	s.Start()
	return s, nil
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// worker drains requests one run at a time. A request arriving during a run
// stays buffered in the channel and becomes the single pending rerun.
func (w *Watcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.requests:
			if ctx.Err() != nil {
				return
			}
			start := time.Now()
			if err := w.run(ctx); err != nil {
				w.logger.Warn("Diagram generation failed", logfields.Error(err))
				continue
			}
			w.logger.Debug("Run finished", logfields.DurationMS(float64(time.Since(start).Milliseconds())))
		}
	}
}
