package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *DiagramError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *DiagramError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *DiagramError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// MissingPrerequisite reports a directory or tool the run cannot proceed without.
func MissingPrerequisite(what, path string, cause error) *DiagramError {
	return Wrap(cause, CategoryConfig, SeverityFatal, what+" not found").
		WithContext("path", path)
}

// Render errors

func RenderFailed(snippet, stage string, cause error) *DiagramError {
	return Wrap(cause, CategoryRender, SeverityError, "diagram render failed").
		WithContext("snippet", snippet).
		WithContext("stage", stage)
}

// Batch errors

func PartialFailure(succeeded, attempted int, cause error) *DiagramError {
	return Wrap(cause, CategoryBuild, SeverityError, "some diagrams failed to render").
		WithContext("succeeded", succeeded).
		WithContext("attempted", attempted)
}

func FileSystemError(operation, path string, cause error) *DiagramError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

// Internal errors

func InternalError(message string, cause error) *DiagramError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
