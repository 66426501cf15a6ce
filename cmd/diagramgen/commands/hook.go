package commands

import "context"

// HookCmd implements the 'hook' command, meant to run before a docs build.
type HookCmd struct {
	Overrides `embed:""`
	Force     bool `help:"Regenerate even when diagrams are up to date (same as FORCE_DIAGRAM_GEN=1)"`
}

func (c *HookCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, c.Overrides)
	if err != nil {
		return err
	}
	if c.Force {
		cfg.Force = true
	}
	sink := newMetricsSink(root.MetricsFile)
	defer sink.Flush(slogOrDefault(g))

	_, err = newRunner(g, cfg, sink).RunHook(context.Background())
	return err
}
