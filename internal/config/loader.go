package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvHighScoreFile = "SURVIVALIST_HIGHSCORE_FILE"
	EnvDatabase      = "SURVIVALIST_DB"
	EnvTickRate      = "SURVIVALIST_TICK_RATE"
)

const localConfigPath = "configs/survivalist.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.survivalist/config.yaml -> ./configs/survivalist.yaml -> embedded default
// Files are laid over the defaults, so a partial file only changes what it names.
func Load(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			return parseCandidate(userCfgPath, data)
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(localConfigPath); err == nil {
		return parseCandidate(localConfigPath, data)
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseCandidate lays a discovered config file over the defaults.
func parseCandidate(path string, data []byte) (Config, error) {
	candidate := DefaultConfig()
	if err := yaml.Unmarshal(data, &candidate); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return candidate, candidate.Validate()
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".survivalist", filename)
}

// ApplyEnv loads an optional .env file from the working directory and
// applies the SURVIVALIST_* overrides found in the environment. Variables
// already set in the process environment win over the .env file.
func ApplyEnv(cfg *Config, envFiles ...string) error {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	if v := os.Getenv(EnvHighScoreFile); v != "" {
		cfg.Storage.HighScoreFile = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.Storage.Database = v
	}
	if v := os.Getenv(EnvTickRate); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil || rate <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalid, EnvTickRate, v)
		}
		cfg.TickRate = rate
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
