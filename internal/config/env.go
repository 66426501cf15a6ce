package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment switches consumed once at process start.
const (
	EnvForce    = "FORCE_DIAGRAM_GEN"
	EnvSkip     = "SKIP_DIAGRAM_GEN"
	EnvLogLevel = "DIAGRAMGEN_LOG_LEVEL"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads variables from .env/.env.local if present. Variables
// already set in the process environment are not overwritten.
func loadEnvFiles() error {
	for _, name := range envFiles {
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return err
		}
	}
	return nil
}

// ApplyEnv copies the environment switches into cfg. Any non-empty value
// counts as set.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg.Force = getenv(EnvForce) != ""
	cfg.Skip = getenv(EnvSkip) != ""
	if lvl := getenv(EnvLogLevel); lvl != "" {
		cfg.Logging.Level = NormalizeLogLevel(lvl)
	}
}
