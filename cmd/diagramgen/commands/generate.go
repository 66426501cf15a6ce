package commands

import "context"

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Overrides `embed:""`
}

func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, c.Overrides)
	if err != nil {
		return err
	}
	sink := newMetricsSink(root.MetricsFile)
	defer sink.Flush(slogOrDefault(g))

	_, err = newRunner(g, cfg, sink).RunDirect(context.Background())
	return err
}
