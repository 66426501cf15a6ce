package config

// Config is the complete configuration of a diagram generation run.
type Config struct {
	Snippets SnippetsConfig `yaml:"snippets"`
	Output   OutputConfig   `yaml:"output"`
	Compiler CompilerConfig `yaml:"compiler"`
	Layout   LayoutConfig   `yaml:"layout"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`

	// Force bypasses the staleness check of the hook entry point.
	Force bool `yaml:"-"`
	// Skip disables the hook entry point entirely.
	Skip bool `yaml:"-"`
}

// SnippetsConfig locates the typestate snippet sources.
type SnippetsConfig struct {
	Directory string `yaml:"directory"`
	Suffix    string `yaml:"suffix"`    // marker before the extension, e.g. "_typestate"
	Extension string `yaml:"extension"` // e.g. ".nim"
}

// OutputConfig locates the generated diagrams.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// CompilerConfig describes the typestates CLI that emits Graphviz descriptions.
type CompilerConfig struct {
	Binary     string `yaml:"binary"`
	Subcommand string `yaml:"subcommand"`
}

// LayoutBackend selects how Graphviz descriptions become images.
type LayoutBackend string

const (
	// LayoutExec runs the external Graphviz binary.
	LayoutExec LayoutBackend = "exec"
	// LayoutEmbedded renders in-process without a Graphviz installation.
	LayoutEmbedded LayoutBackend = "embedded"
)

// LayoutConfig describes the Graphviz layout step.
type LayoutConfig struct {
	Backend LayoutBackend `yaml:"backend"`
	Binary  string        `yaml:"binary"`
	Format  string        `yaml:"format"`
}

// LoggingConfig holds logging preferences.
type LoggingConfig struct {
	Level LogLevel `yaml:"level,omitempty"`
}
