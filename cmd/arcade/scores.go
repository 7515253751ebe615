package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/drop-arcade/internal/platform/tui"
	"github.com/vovakirdan/drop-arcade/internal/registry"
	"github.com/vovakirdan/drop-arcade/internal/storage"
)

var (
	flagScoresLimit   int
	flagScoresClear   bool
	flagScoresPlayers bool
	flagScoresMine    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top scores for the specified game, or a summary of
every game when no game is given.

Examples:
  arcade scores
  arcade scores dodge
  arcade scores catch --limit 20
  arcade scores catch --players          # best run of each player
  arcade scores dodge --mine             # your own runs, newest first
  arcade scores dash --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history and best score of the game")
	scoresCmd.Flags().BoolVar(&flagScoresPlayers, "players", false, "Rank players by their best run")
	scoresCmd.Flags().BoolVar(&flagScoresMine, "mine", false, "Show only runs recorded under --player")
	scoresCmd.MarkFlagsMutuallyExclusive("players", "mine", "clear")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagScoresClear {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a game")
			return
		}
		printSummary(store)
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		return
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return
	}

	switch {
	case flagScoresPlayers:
		printPlayers(store, gameID)
	case flagScoresMine:
		printGameScores(store, gameID, currentPlayer())
	default:
		printGameScores(store, gameID, "")
	}
}

// currentPlayer is the name runs are recorded under on this machine.
func currentPlayer() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	return tui.LocalPlayer()
}

func gameTitle(gameID string) string {
	if info, ok := registry.Info(gameID); ok {
		return info.Title
	}
	return gameID
}

func playerName(name string) string {
	if name == "" {
		return "-"
	}
	return name
}

// printGameScores lists the top runs of a game, or the latest runs of
// player when it is set.
func printGameScores(store *storage.Store, gameID, player string) {
	var (
		scores []storage.ScoreEntry
		err    error
	)
	if player != "" {
		scores, err = store.PlayerScores(gameID, player, flagScoresLimit)
		fmt.Printf("Runs by %s - %s\n\n", player, gameTitle(gameID))
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
		fmt.Printf("High Scores - %s\n\n", gameTitle(gameID))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	if len(scores) == 0 {
		if best, err := store.LoadBest(gameID); err == nil && best > 0 {
			fmt.Printf("Best: %d\n\n", best)
		}
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-12s  %s\n", "Rank", "Score", "Level", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-12s  %s\n", "----", "-----", "-----", "------", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-10d  %-5d  %-12s  %s\n",
			i+1, e.Score, e.Level, playerName(e.Player), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		logger.Warn("could not load game stats", "game", gameID, "err", err)
		return
	}
	fmt.Printf("Best: %d  Runs: %d  Players: %d  Average: %.0f  Max level: %d\n",
		stats.Best, stats.GamesCount, stats.Players, stats.AvgScore, stats.MaxLevel)
}

func printPlayers(store *storage.Store, gameID string) {
	players, err := store.TopPlayers(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving players: %v\n", err)
		return
	}

	fmt.Printf("Players - %s\n\n", gameTitle(gameID))
	if len(players) == 0 {
		fmt.Println("No named runs recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "Rank", "Player", "Best", "Runs")
	fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "----", "------", "----", "----")
	for i, p := range players {
		fmt.Printf("  %-4d  %-12s  %-10d  %d\n", i+1, p.Player, p.Best, p.Runs)
	}
}

func printSummary(store *storage.Store) {
	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}

	fmt.Println("Scores")
	fmt.Println()
	fmt.Printf("  %-8s  %-8s  %-6s  %-9s  %s\n", "Game", "Best", "Runs", "Max level", "Last played")
	fmt.Printf("  %-8s  %-8s  %-6s  %-9s  %s\n", "----", "----", "----", "---------", "-----------")

	for _, g := range registry.List() {
		gs, ok := all[g.ID]
		if !ok {
			best, err := store.LoadBest(g.ID)
			if err != nil {
				logger.Warn("could not load best score", "game", g.ID, "err", err)
			}
			fmt.Printf("  %-8s  %-8d  %-6d  %-9s  %s\n", g.ID, best, 0, "-", "never")
			continue
		}
		fmt.Printf("  %-8s  %-8d  %-6d  %-9d  %s\n", g.ID, gs.Best, gs.GamesCount, gs.MaxLevel,
			gs.LastPlayed.Format("2006-01-02 15:04"))
	}
}
