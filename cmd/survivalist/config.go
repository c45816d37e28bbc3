package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/survivalist/internal/config"
)

// loadConfig resolves the game config: file search path, .env and
// environment overrides, the difficulty preset, then command line flags.
// Storage paths come back with ~ expanded.
func loadConfig(difficulty string) (config.Config, config.DifficultyPreset, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, "", err
	}

	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return cfg, "", err
	}
	config.ApplyPreset(&cfg, preset)

	if rootCmd.PersistentFlags().Changed("fps") {
		cfg.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.Database = flagDBPath
	}

	if cfg.Storage.HighScoreFile, err = config.ExpandHome(cfg.Storage.HighScoreFile); err != nil {
		return cfg, "", err
	}
	if cfg.Storage.Database, err = config.ExpandHome(cfg.Storage.Database); err != nil {
		return cfg, "", err
	}
	return cfg, preset, cfg.Validate()
}

// openLogFile returns a logger appending to path. The terminal belongs to
// the game while playing, so play mode never logs to stderr.
func openLogFile(path string) (*log.Logger, func(), error) {
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "survivalist",
	})
	return logger, func() { f.Close() }, nil
}
