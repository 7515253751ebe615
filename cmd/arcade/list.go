package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/drop-arcade/internal/registry"
	"github.com/vovakirdan/drop-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows every game in the arcade with a one-line summary of its rules
and the best score stored in the scores database.`,
	Run: runList,
}

var listHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	best := make(map[string]int, len(games))
	if store, err := storage.Open(flagDBPath); err != nil {
		logger.Debug("listing without scores", "err", err)
	} else {
		for _, g := range games {
			if best[g.ID], err = store.LoadBest(g.ID); err != nil {
				logger.Warn("could not load best score", "game", g.ID, "err", err)
			}
		}
		store.Close()
	}

	writeGameList(os.Stdout, games, best)
}

// writeGameList renders the game table. Games without a best score show "-".
func writeGameList(w io.Writer, games []registry.GameInfo, best map[string]int) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ID", "TITLE", "RULES", "BEST").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, g := range games {
		b := "-"
		if n := best[g.ID]; n > 0 {
			b = strconv.Itoa(n)
		}
		t.Row(g.ID, g.Title, g.Summary, b)
	}

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'arcade play <id>' to play a game.")
}
