// arcade is a TUI arcade of falling-object games played in the terminal.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores [game]     - Show high scores
//	arcade sim <game>        - Run a headless scripted session
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Custom game config (YAML or TOML)
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error (default: warn)
//	--player <name>       - Name recorded with runs (default: login name)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/drop-arcade/internal/games/catch"
	"github.com/vovakirdan/drop-arcade/internal/games/dash"
	"github.com/vovakirdan/drop-arcade/internal/games/dodge"
	"github.com/vovakirdan/drop-arcade/internal/games/falling"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagPlayer     string
)

// logger is configured from --log-level before any command runs.
var logger = log.Default()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Drop Arcade - falling-object games in your terminal",
	Long: `Drop Arcade is a terminal-based arcade of falling-object games:
dodge the blocks, dash through meteors, catch the fruit.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Run a headless session and print its final state

Examples:
  arcade list
  arcade play dodge
  arcade menu
  arcade serve --ssh :2222
  arcade scores catch`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Name recorded with your runs (default: login name)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// setup validates the global flags and builds the shared logger.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
	}
	if flagDifficulty != "" && !validPreset(flagDifficulty) {
		return fmt.Errorf("invalid --difficulty %q: use easy, normal, hard or fixed", flagDifficulty)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "arcade",
	})
	log.SetDefault(logger)
	falling.SetLogger(logger)
	return nil
}

// gameSettings are the load-time hooks of each registered game.
var gameSettings = map[string]struct {
	configPath func(string)
	preset     func(string)
}{
	dodge.ID: {dodge.SetConfigPath, dodge.SetDifficultyPreset},
	dash.ID:  {dash.SetConfigPath, dash.SetDifficultyPreset},
	catch.ID: {catch.SetConfigPath, catch.SetDifficultyPreset},
}

// configureGame applies --difficulty to every game and --config to the
// game about to be created only.
func configureGame(gameID string) {
	for id, s := range gameSettings {
		path := ""
		if id == gameID {
			path = flagConfig
		}
		s.configPath(path)
		s.preset(flagDifficulty)
	}
}

func validPreset(s string) bool {
	switch s {
	case "easy", "normal", "hard", "fixed":
		return true
	}
	return false
}
