package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/survivalist/internal/highscore"
	"github.com/vovakirdan/survivalist/internal/platform/runner"
	"github.com/vovakirdan/survivalist/internal/platform/term"
	"github.com/vovakirdan/survivalist/internal/platform/tui"
	"github.com/vovakirdan/survivalist/internal/sound"
	"github.com/vovakirdan/survivalist/internal/storage"
)

// backendTea plays through Bubble Tea instead of a raw terminal backend.
const backendTea = "tea"

var (
	flagDifficulty string
	flagBackend    string
	flagSound      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls (configurable in the config file):
  W/A/S/D   - Steer
  Space     - Pause
  R         - Restart
  P/Ctrl+C  - Quit

Difficulty options:
  easy   - Slower enemies, enemy added at each milestone
  normal - The classic game
  hard   - Three faster enemies from the start
  fixed  - Speeds never ramp up on wall hits

Backends:
  ansi   - Raw mode escape sequences (default on unix)
  tcell  - tcell screen (default on windows)
  tea    - Bubble Tea program

Examples:
  survivalist play
  survivalist play --difficulty hard
  survivalist play --backend tcell --sound
  survivalist play --seed 42 --fps 30`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags registers the play flags. The root command plays too, so
// both commands carry them.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagBackend, "backend", "", "Terminal backend: ansi, tcell, tea")
	cmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// play runs one game until the player exits.
func play(difficulty string) error {
	cfg, preset, err := loadConfig(difficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, logging disabled\n", err)
		logger, closeLog = log.New(io.Discard), func() {}
	}
	defer closeLog()

	hs, err := highscore.Open(cfg.Storage.HighScoreFile)
	if err != nil {
		return err
	}

	// Run history is optional, the game still works without it
	var recorder runner.RunRecorder
	store, err := storage.Open(cfg.Storage.Database)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
	} else {
		defer store.Close()
		recorder = store
	}

	if flagBackend == backendTea {
		opts := tui.GameOptions{
			Config:     cfg,
			Difficulty: preset,
			Seed:       flagSeed,
			HighScore:  hs,
			Logger:     logger,
		}
		if store != nil {
			opts.Recorder = store
		}
		return tui.RunGame(opts)
	}

	backend, err := term.ParseBackend(flagBackend)
	if err != nil {
		return err
	}
	terminal, err := term.New(backend, logger)
	if err != nil {
		return err
	}

	player := sound.New(cfg.Sound || flagSound, logger)
	defer player.Close()

	r, err := runner.New(runner.Options{
		Config:     cfg,
		Difficulty: preset,
		Seed:       flagSeed,
		Terminal:   terminal,
		HighScore:  hs,
		Recorder:   recorder,
		Sound:      player,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "backend", backend, "difficulty", preset, "tick_rate", cfg.TickRate)
	return r.Run(ctx)
}
