package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/diagramgen/internal/errors"
)

// Load reads the YAML file at configPath, applies defaults and environment
// switches, and validates the result. Environment variables referenced as
// ${VAR} in the file are expanded after .env files are loaded.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, derrors.ConfigInvalid(".env", err)
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, derrors.ConfigNotFound(configPath)
	}
	if err != nil {
		return nil, derrors.FileSystemError("read config", configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, derrors.ConfigInvalid(configPath, err)
	}
	return finish(&cfg)
}

// LoadOrDefault behaves like Load but returns the defaults when configPath
// does not exist. An empty path always yields the defaults.
func LoadOrDefault(configPath string) (*Config, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return Load(configPath)
		}
	}
	if err := loadEnvFiles(); err != nil {
		return nil, derrors.ConfigInvalid(".env", err)
	}
	return finish(&Config{})
}

func finish(cfg *Config) (*Config, error) {
	applyDefaults(cfg)
	ApplyEnv(cfg, os.Getenv)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes an example configuration file holding the defaults.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := "# diagramgen configuration. FORCE_DIAGRAM_GEN=1 forces regeneration,\n" +
		"# SKIP_DIAGRAM_GEN=1 disables the build hook.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
