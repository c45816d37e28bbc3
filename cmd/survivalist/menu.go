package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/survivalist/internal/config"
	"github.com/vovakirdan/survivalist/internal/highscore"
	"github.com/vovakirdan/survivalist/internal/platform/tui"
	"github.com/vovakirdan/survivalist/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a difficulty, Enter to play.
After you quit a game, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - Run history
  Q            - Quit

Examples:
  survivalist menu
  survivalist menu --backend tcell`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	addPlayFlags(menuCmd)
	rootCmd.AddCommand(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := menu(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func menu() error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	for {
		cfg, _, err := loadConfig(string(preset))
		if err != nil {
			return err
		}
		hs, err := highscore.Open(cfg.Storage.HighScoreFile)
		if err != nil {
			return err
		}

		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}

		result, err := tui.RunMenu(preset, hs.Best(), width, height)
		if err != nil {
			return err
		}

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := showScoreboard(cfg.Storage.Database, width, height)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			preset = result.Difficulty
			if err := play(string(preset)); err != nil {
				return err
			}
		}
	}
}

func showScoreboard(dbPath string, width, height int) (bool, error) {
	store, err := storage.Open(dbPath)
	if err != nil {
		return false, fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()
	return tui.RunScoreboard(store, width, height)
}
