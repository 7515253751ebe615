package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/drop-arcade/internal/core"
	"github.com/vovakirdan/drop-arcade/internal/registry"
	"github.com/vovakirdan/drop-arcade/internal/storage"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuItemStyle     = lipgloss.NewStyle().Padding(0, 1)
	menuSelectedStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
				Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID  string
	Title   string
	Summary string
	Best    int // persisted best score, 0 without a store
	Runs    int // recorded runs
}

// loadMenuItems lists the registered games with their stored results.
func loadMenuItems(store *storage.Store) []MenuItem {
	var stats map[string]*storage.GameStats
	if store != nil {
		var err error
		if stats, err = store.GetAllGamesStats(); err != nil {
			log.Warn("failed to load game stats", "err", err)
		}
	}

	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title, Summary: g.Summary}
		switch gs, ok := stats[g.ID]; {
		case ok:
			item.Best, item.Runs = gs.Best, gs.GamesCount
		case store != nil:
			// Best slot without any recorded run
			best, err := store.LoadBest(g.ID)
			if err != nil {
				log.Warn("failed to load best score", "game", g.ID, "err", err)
			}
			item.Best = best
		}
		items = append(items, item)
	}
	return items
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     loadMenuItems(store),
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation. Digits pick a
// game directly.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k := msg.String(); len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		if i := int(k[0] - '1'); i < len(m.items) {
			m.cursor = i
			return m.choose()
		}
		return m, nil
	}

	n := len(m.items)
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if n > 0 {
			m.cursor = (m.cursor + n - 1) % n
		}

	case MenuActionDown:
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}

	case MenuActionSelect:
		return m.choose()

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// choose selects the item under the cursor and leaves the menu.
func (m MenuModel) choose() (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	selected := m.items[m.cursor]
	m.selected = &selected
	return m, tea.Quit
}

// View renders the menu centered on the screen.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleWidth := 0
	for _, item := range m.items {
		titleWidth = max(titleWidth, len(item.Title))
	}

	rows := make([]string, 0, len(m.items))
	for i, item := range m.items {
		best := "-"
		if item.Best > 0 {
			best = fmt.Sprintf("%d", item.Best)
		}
		line := fmt.Sprintf("%d  %-*s  best %6s", i+1, titleWidth, item.Title, best)
		if i == m.cursor {
			rows = append(rows, menuSelectedStyle.Render(line))
		} else {
			rows = append(rows, menuItemStyle.Render(line))
		}
	}

	var detail string
	if len(m.items) > 0 {
		item := m.items[m.cursor]
		var parts []string
		if item.Summary != "" {
			parts = append(parts, item.Summary)
		}
		if item.Runs > 0 {
			parts = append(parts, fmt.Sprintf("%d runs", item.Runs))
		}
		detail = strings.Join(parts, "  |  ")
	}

	block := lipgloss.JoinVertical(lipgloss.Center,
		menuTitleStyle.Render("D R O P   A R C A D E"),
		menuDimStyle.Render("catch it or dodge it"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		menuDimStyle.Render(detail),
		"",
		menuDimStyle.Render("Up/Down: Navigate  |  Enter/1-9: Play  |  Tab: Scores  |  Q: Quit"),
	)

	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, block)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
