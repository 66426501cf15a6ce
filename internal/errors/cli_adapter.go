package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor determines the exit code for an error. Every failure of the
// generator (missing prerequisites, partial render failure) exits with 1.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if de, ok := As(err); ok {
		return a.formatDiagram(de)
	}

	return fmt.Sprintf("ERROR: %v", err)
}

func (a *CLIErrorAdapter) formatDiagram(err *DiagramError) string {
	if a.verbose {
		return "ERROR: " + err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		if path, ok := err.Context["path"]; ok {
			return fmt.Sprintf("ERROR: %s: %v", err.Message, path)
		}
		return "ERROR: " + err.Message
	default:
		return fmt.Sprintf("ERROR: %s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintln(a.stderr, a.FormatError(err))
	a.exit(a.ExitCodeFor(err))
}

func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if de, ok := As(err); ok {
		return de.Category == CategoryInternal || de.Category == CategoryFileSystem
	}

	return true
}

func (a *CLIErrorAdapter) logError(err error) {
	if de, ok := As(err); ok {
		attrs := []slog.Attr{slog.String("category", string(de.Category))}
		for k, v := range de.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if de.Cause != nil {
			attrs = append(attrs, slog.String("error", de.Cause.Error()))
		}
		a.logger.LogAttrs(context.Background(), slogLevelFromSeverity(de.Severity), de.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

func slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
