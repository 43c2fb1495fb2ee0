// quest is a TUI platform for playing small quest games in the terminal.
//
// Usage:
//
//	quest list               - List available games
//	quest play <game>        - Play a game
//	quest menu               - Start menu to pick games interactively
//	quest serve              - Start SSH server for remote play
//	quest scores <game>      - Show recorded runs for a game
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.quest/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/steamvn/tui-quest/internal/games/crazyrobot"
	_ "github.com/steamvn/tui-quest/internal/games/sidequest"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quest",
	Short: "TUI Quest - Play course games in your terminal",
	Long: `TUI Quest is a terminal-based gaming platform hosting the quest games:
dodge the crazy robots, collect diamonds, talk to friendly NPCs and reach
the goal.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View recorded runs

Examples:
  quest list
  quest play crazyrobot
  quest menu
  quest serve --ssh :2222
  quest scores sidequest`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.quest/scores.db", "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
