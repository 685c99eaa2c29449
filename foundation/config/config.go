// Package config loads the credential and runtime settings for geminichat.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// APIKeyEnv names the environment variable holding the Gemini credential.
	APIKeyEnv = "GEMINI_API_KEY"

	DefaultModel   = "gemini-2.5-flash"
	DefaultEnvFile = ".env"
)

// ErrMissingCredential is returned when APIKeyEnv is unset or blank.
var ErrMissingCredential = errors.New(APIKeyEnv + " environment variable is required")

// Config holds all runtime configuration.
type Config struct {
	APIKey            string
	Model             string
	SystemInstruction string
	EnvFile           string
	Verbose           bool
	Color             bool
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		Model:   DefaultModel,
		EnvFile: DefaultEnvFile,
	}
}

// Load seeds the process environment from cfg.EnvFile, if present, and reads
// the credential. Variables already set in the environment are not overridden.
func Load(cfg Config) (Config, error) {
	cfg = Normalize(cfg)

	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
		}
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv(APIKeyEnv))
	if cfg.APIKey == "" {
		return cfg, ErrMissingCredential
	}
	return cfg, nil
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.SystemInstruction = strings.TrimSpace(cfg.SystemInstruction)
	cfg.EnvFile = strings.TrimSpace(cfg.EnvFile)
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return cfg
}
