package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/diagramgen/cmd/diagramgen/commands"
	derrors "git.home.luguber.info/inful/diagramgen/internal/errors"
	"git.home.luguber.info/inful/diagramgen/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("diagramgen"),
		kong.Description("Keep generated typestate diagrams in sync with their snippets."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	err := parser.Run(&commands.Global{Logger: slog.Default()}, cli)
	derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
