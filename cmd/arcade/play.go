package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/drop-arcade/internal/core"
	"github.com/vovakirdan/drop-arcade/internal/platform/tui"
	"github.com/vovakirdan/drop-arcade/internal/registry"
	"github.com/vovakirdan/drop-arcade/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Left/Right/A/D - Move
  Space          - Dash (dash) / Start
  Enter          - Start
  P/Esc          - Pause
  R              - Restart
  B              - Back (when paused or after game over)
  Q/Ctrl+C       - Quit
  Ctrl+S         - Save a screenshot to ~/.arcade/screenshots

Difficulty options:
  easy   - More lives (or a looser miss limit)
  normal - Defaults from the game config
  hard   - One life (or a tighter miss limit)
  fixed  - No progression, stays at the config's initial level

Examples:
  arcade play dodge
  arcade play dash --difficulty easy
  arcade play catch --difficulty hard
  arcade play dodge --difficulty fixed
  arcade play dodge --config ./my-dodge.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = terminalSize()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed

	// Set config path and difficulty before creation
	configureGame(gameID)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg, flagPlayer)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// terminalSize returns the size of stdout, or the default 80x24 when it is
// not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	def := core.DefaultConfig()
	return def.ScreenW, def.ScreenH
}
