// Package errors provides a lightweight structured error type (DiagramError)
// for category-based classification of configuration, render and build failures.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a diagram generation error.
type ErrorCategory string

const (
	// Configuration errors: missing snippets directory, missing tools, bad config file.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Per-snippet external tool failures.
	CategoryRender ErrorCategory = "render"

	// Batch level and filesystem errors
	CategoryBuild      ErrorCategory = "build"
	CategoryFileSystem ErrorCategory = "filesystem"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// DiagramError is a structured error with category, severity and context.
type DiagramError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DiagramError
type ContextFields map[string]any

// Error implements the error interface
func (e *DiagramError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *DiagramError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DiagramError) WithContext(key string, value any) *DiagramError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DiagramError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DiagramError {
	return &DiagramError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DiagramError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DiagramError {
	return &DiagramError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the first DiagramError in err's chain.
func As(err error) (*DiagramError, bool) {
	var de *DiagramError
	if stdErrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if de, ok := As(err); ok {
		return de.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a DiagramError
func GetCategory(err error) ErrorCategory {
	if de, ok := As(err); ok {
		return de.Category
	}
	return CategoryInternal
}
