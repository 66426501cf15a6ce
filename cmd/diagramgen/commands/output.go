package commands

import (
	"io"
	"log/slog"
	"os"
)

func stdoutOr(g *Global) io.Writer {
	if g.Out != nil {
		return g.Out
	}
	return os.Stdout
}

func slogOrDefault(g *Global) *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}
