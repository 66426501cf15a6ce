package commands

import (
	"fmt"

	derrors "git.home.luguber.info/inful/diagramgen/internal/errors"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Overrides `embed:""`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, c.Overrides)
	if err != nil {
		return err
	}
	decision, err := newRunner(g, cfg, newMetricsSink("")).Check()
	if err != nil {
		return err
	}
	out := stdoutOr(g)
	if !decision.Regenerate {
		_, _ = fmt.Fprintln(out, "Diagrams are up to date")
		return nil
	}
	_, _ = fmt.Fprintf(out, "Diagrams are stale: %s (%s)\n", decision.Reason, decision.Path)
	return derrors.New(derrors.CategoryBuild, derrors.SeverityInfo, "diagrams are stale").
		WithContext("reason", string(decision.Reason)).
		WithContext("path", decision.Path)
}
