package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/diagramgen/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultSnippetsDir, cfg.Snippets.Directory)
	assert.Equal(t, "_typestate", cfg.Snippets.Suffix)
	assert.Equal(t, ".nim", cfg.Snippets.Extension)
	assert.Equal(t, DefaultOutputDir, cfg.Output.Directory)
	assert.Equal(t, "bin/typestates", cfg.Compiler.Binary)
	assert.Equal(t, "dot", cfg.Compiler.Subcommand)
	assert.Equal(t, LayoutExec, cfg.Layout.Backend)
	assert.Equal(t, "svg", cfg.Layout.Format)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.False(t, cfg.Force)
	assert.False(t, cfg.Skip)
	require.NoError(t, Validate(cfg))
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantForce bool
		wantSkip  bool
		wantLevel LogLevel
	}{
		{name: "unset", env: map[string]string{}, wantLevel: LogLevelInfo},
		{name: "force", env: map[string]string{EnvForce: "1"}, wantForce: true, wantLevel: LogLevelInfo},
		{name: "skip with any value", env: map[string]string{EnvSkip: "no"}, wantSkip: true, wantLevel: LogLevelInfo},
		{name: "empty is unset", env: map[string]string{EnvForce: "", EnvSkip: ""}, wantLevel: LogLevelInfo},
		{name: "log level", env: map[string]string{EnvLogLevel: "DEBUG"}, wantLevel: LogLevelDebug},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			ApplyEnv(cfg, func(k string) string { return tt.env[k] })
			assert.Equal(t, tt.wantForce, cfg.Force)
			assert.Equal(t, tt.wantSkip, cfg.Skip)
			assert.Equal(t, tt.wantLevel, cfg.Logging.Level)
		})
	}
}

func TestLoad_ExpandsEnvAndAppliesDefaults(t *testing.T) {
	t.Setenv("DIAGRAM_OUT", "site/diagrams")
	t.Setenv(EnvForce, "")
	t.Setenv(EnvSkip, "")
	path := filepath.Join(t.TempDir(), "diagramgen.yaml")
	content := `snippets:
  directory: snippets
output:
  directory: ${DIAGRAM_OUT}
layout:
  format: png
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "snippets", cfg.Snippets.Directory)
	assert.Equal(t, "site/diagrams", cfg.Output.Directory)
	assert.Equal(t, "png", cfg.Layout.Format)
	assert.Equal(t, DefaultCompiler, cfg.Compiler.Binary)
	assert.Equal(t, LayoutExec, cfg.Layout.Backend)
}

func TestLoad_ReadsEnvSwitches(t *testing.T) {
	t.Setenv(EnvForce, "1")
	t.Setenv(EnvSkip, "")
	path := filepath.Join(t.TempDir(), "diagramgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  directory: out\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Force)
	assert.False(t, cfg.Skip)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snippets: [unclosed"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	t.Setenv(EnvForce, "")
	t.Setenv(EnvSkip, "1")
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputDir, cfg.Output.Directory)
	assert.True(t, cfg.Skip)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "unknown backend", mutate: func(c *Config) { c.Layout.Backend = "wasm" }, field: "layout.backend"},
		{name: "dotted format", mutate: func(c *Config) { c.Layout.Format = ".svg" }, field: "layout.format"},
		{name: "dot format", mutate: func(c *Config) { c.Layout.Format = "dot" }, field: "layout.format"},
		{name: "embedded pdf", mutate: func(c *Config) {
			c.Layout.Backend = LayoutEmbedded
			c.Layout.Format = "pdf"
		}, field: "layout.format"},
		{name: "extension without dot", mutate: func(c *Config) { c.Snippets.Extension = "nim" }, field: "snippets.extension"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			de, ok := derrors.As(err)
			require.True(t, ok)
			assert.Equal(t, derrors.CategoryValidation, de.Category)
			assert.Equal(t, tt.field, de.Context["field"])
		})
	}

	t.Run("exec pdf is allowed", func(t *testing.T) {
		cfg := Default()
		cfg.Layout.Format = "pdf"
		assert.NoError(t, Validate(cfg))
	})
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagramgen.yaml")
	require.NoError(t, Init(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FORCE_DIAGRAM_GEN")
	assert.Contains(t, string(data), "examples/snippets")

	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	t.Setenv(EnvForce, "")
	t.Setenv(EnvSkip, "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Layout, cfg.Layout)
}

func TestNormalizeLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel(" warning "))
	assert.Equal(t, LogLevelError, NormalizeLogLevel("error"))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, LogLevelDebug.SlogLevel().String(), "DEBUG")
}
