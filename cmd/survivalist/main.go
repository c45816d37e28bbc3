// survivalist is a terminal survival game: keep a bouncing rectangle away
// from ever more bouncing obstacles.
//
// Usage:
//
//	survivalist                - Play (same as "survivalist play")
//	survivalist play           - Play in this terminal
//	survivalist scores         - Show the run history
//	survivalist serve          - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 15)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--config <path>    - Use a custom config YAML
//	--db <path>        - Set run history database path
//	--log-file <path>  - Where play mode writes its log
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagConfig  string
	flagDBPath  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "survivalist",
	Short: "Survivalist Rect - dodge the bouncing objects in your terminal",
	Long: `Survivalist Rect is a terminal game. Your rectangle bounces around the
screen and every wall hit scores a point. Each milestone adds another
bouncing object; touch one and the game is over.

Available commands:
  play     - Play in this terminal (default)
  scores   - View the run history
  serve    - Start SSH server for remote play

Examples:
  survivalist
  survivalist play --difficulty hard
  survivalist scores --limit 20
  survivalist serve --ssh :2222`,
}

func init() {
	// Assigned here rather than in the literal: runPlay reaches rootCmd
	// through loadConfig, which would be an initialization cycle.
	rootCmd.Run = runPlay

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 15, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.survivalist/survivalist.log", "Path to the play mode log file")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
