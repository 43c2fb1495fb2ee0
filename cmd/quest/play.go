package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/steamvn/tui-quest/internal/core"
	"github.com/steamvn/tui-quest/internal/games/crazyrobot"
	"github.com/steamvn/tui-quest/internal/games/sidequest"
	"github.com/steamvn/tui-quest/internal/platform/tui"
	"github.com/steamvn/tui-quest/internal/registry"
	"github.com/steamvn/tui-quest/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  A/D or arrows - Move
  W/S or arrows - Move up/down (top-down games)
  Space         - Jump (side-view games)
  E             - Talk to an adjacent NPC
  P             - Pause
  R             - Restart (after game over)
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  quest play crazyrobot
  quest play sidequest --difficulty easy
  quest play crazyrobot --config ./my-crazyrobot.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyGameFlags wires the config and difficulty flags into the game package
// before the game instance is created.
func applyGameFlags(gameID string) {
	switch gameID {
	case "crazyrobot":
		crazyrobot.SetConfigPath(flagConfig)
		crazyrobot.SetDifficultyPreset(flagDifficulty)
	case "sidequest":
		sidequest.SetConfigPath(flagConfig)
		sidequest.SetDifficultyPreset(flagDifficulty)
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'quest list' to see available games.")
		os.Exit(1)
	}

	// Terminal size with sane fallbacks
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	applyGameFlags(gameID)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
