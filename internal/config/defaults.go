package config

// Default locations match the repository layout the documentation build expects.
const (
	DefaultConfigPath  = "diagramgen.yaml"
	DefaultSnippetsDir = "examples/snippets"
	DefaultSuffix      = "_typestate"
	DefaultExtension   = ".nim"
	DefaultOutputDir   = "docs/assets/images/generated"
	DefaultCompiler    = "bin/typestates"
	DefaultSubcommand  = "dot"
	DefaultLayoutBin   = "dot"
	DefaultFormat      = "svg"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Snippets.Directory == "" {
		cfg.Snippets.Directory = DefaultSnippetsDir
	}
	if cfg.Snippets.Suffix == "" {
		cfg.Snippets.Suffix = DefaultSuffix
	}
	if cfg.Snippets.Extension == "" {
		cfg.Snippets.Extension = DefaultExtension
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDir
	}
	if cfg.Compiler.Binary == "" {
		cfg.Compiler.Binary = DefaultCompiler
	}
	if cfg.Compiler.Subcommand == "" {
		cfg.Compiler.Subcommand = DefaultSubcommand
	}
	if cfg.Layout.Backend == "" {
		cfg.Layout.Backend = LayoutExec
	}
	if cfg.Layout.Binary == "" {
		cfg.Layout.Binary = DefaultLayoutBin
	}
	if cfg.Layout.Format == "" {
		cfg.Layout.Format = DefaultFormat
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
}
