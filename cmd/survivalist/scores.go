package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/survivalist/internal/config"
	"github.com/vovakirdan/survivalist/internal/platform/tui"
	"github.com/vovakirdan/survivalist/internal/storage"
)

var (
	flagLimit           int
	flagScoresTUI       bool
	flagScoreDifficulty string
	flagClear           bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best recorded runs, optionally for one difficulty.

Examples:
  survivalist scores
  survivalist scores --difficulty hard --limit 20
  survivalist scores --tui
  survivalist scores --difficulty easy --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the history interactively")
	scoresCmd.Flags().StringVar(&flagScoreDifficulty, "difficulty", "", "Only show one difficulty: easy, normal, hard, fixed")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the listed runs instead of showing them")
}

func runScores(_ *cobra.Command, _ []string) {
	if err := showScores(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showScores() error {
	cfg, _, err := loadConfig("")
	if err != nil {
		return err
	}

	difficulty := ""
	if flagScoreDifficulty != "" {
		preset, err := config.ParsePreset(flagScoreDifficulty)
		if err != nil {
			return err
		}
		difficulty = string(preset)
	}

	store, err := storage.Open(cfg.Storage.Database)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(difficulty); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, width, height)
		return err
	}

	runs, err := store.TopRuns(difficulty, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	title := "all difficulties"
	if difficulty != "" {
		title = difficulty
	}
	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'survivalist play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-7s  %-8s  %-9s  %s\n", "Rank", "Score", "Level", "Enemies", "Ticks", "End", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-7s  %-8s  %-9s  %s\n", "----", "-----", "-----", "-------", "-----", "---", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-8s  %-7d  %-8d  %-9s  %s\n",
			i+1, r.Score, r.Difficulty, r.Enemies, r.Ticks, r.EndReason, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	all, err := store.AllStats()
	if err != nil {
		// The listing above is already complete
		return nil
	}
	fmt.Println()
	for _, preset := range []config.DifficultyPreset{config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed} {
		s, ok := all[string(preset)]
		if !ok || (difficulty != "" && difficulty != s.Difficulty) {
			continue
		}
		fmt.Printf("%-7s %d runs, best %d, average %.1f\n", s.Difficulty+":", s.Runs, s.HighScore, s.AvgScore)
	}
	return nil
}
