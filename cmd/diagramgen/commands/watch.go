package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/diagramgen/internal/snippet"
	"git.home.luguber.info/inful/diagramgen/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Overrides    `embed:""`
	Debounce     time.Duration `help:"Quiet period after a change before regenerating" default:"300ms"`
	PollInterval time.Duration `name:"poll-interval" help:"Also check for stale diagrams at this interval (0 disables)" default:"0s"`
}

func (c *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, c.Overrides)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := slogOrDefault(g)
	sink := newMetricsSink(root.MetricsFile)
	runner := newRunner(g, cfg, sink)

	w := watch.New(watch.Options{
		SnippetsDir:  cfg.Snippets.Directory,
		ToolPath:     cfg.Compiler.Binary,
		Pattern:      snippet.Pattern{Suffix: cfg.Snippets.Suffix, Ext: cfg.Snippets.Extension},
		Debounce:     c.Debounce,
		PollInterval: c.PollInterval,
	}, func(ctx context.Context) error {
		defer sink.Flush(logger)
		_, err := runner.RunHook(ctx)
		return err
	}).WithLogger(logger)

	return w.Run(ctx)
}
