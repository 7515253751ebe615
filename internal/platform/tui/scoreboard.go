package tui

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/drop-arcade/internal/registry"
	"github.com/vovakirdan/drop-arcade/internal/storage"
)

const (
	minWidthForPanel = 80  // Stats panel is shown next to the table from here
	panelWidth       = 24  // Stats panel width including padding
	maxScores        = 100 // Max scores to load
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("241"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	emptyStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Padding(2, 4)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Prev, k.Next}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next game")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev game")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	games     []registry.GameInfo
	current   int
	store     *storage.Store
	scores    []storage.ScoreEntry
	stats     *storage.GameStats // nil until the selected game has runs
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.selectGame(0)
	return m
}

func (m ScoreboardModel) showPanel() bool {
	return m.width >= minWidthForPanel
}

// newTable builds the score table sized to the current window.
func (m ScoreboardModel) newTable() table.Model {
	playerWidth := 10
	if avail := m.width - 8; m.showPanel() && avail-panelWidth > 56 {
		playerWidth = 16
	}
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 5},
		{Title: "Player", Width: playerWidth},
		{Title: "Played", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)), // title, tabs, borders and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)
	t.SetRows(m.rows())
	return t
}

func (m ScoreboardModel) rows() []table.Row {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Level),
			cmp.Or(s.Player, "-"),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// selectGame switches to game i (wrapping) and reloads its scores.
func (m *ScoreboardModel) selectGame(i int) {
	m.scores, m.stats = nil, nil
	if n := len(m.games); n > 0 {
		m.current = (i%n + n) % n
		m.loadScores(m.games[m.current].ID)
	}
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

// loadScores reads the run history and stats of one game.
func (m *ScoreboardModel) loadScores(gameID string) {
	if m.store == nil {
		return
	}

	scores, err := m.store.TopScores(gameID, maxScores)
	if err != nil {
		log.Warn("failed to load scores", "game", gameID, "err", err)
		return
	}
	m.scores = scores

	if len(scores) == 0 {
		return
	}
	if m.stats, err = m.store.GetGameStats(gameID); err != nil {
		log.Warn("failed to load game stats", "game", gameID, "err", err)
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.selectGame(m.current + 1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selectGame(m.current - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	center := func(s string) string {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
	}

	body := boxStyle.Render(m.tableView())
	if m.showPanel() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.panelView())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		center(menuTitleStyle.Render("HIGH SCORES")),
		"",
		center(m.tabsView()),
		"",
		center(body),
		center(menuDimStyle.Render(m.help.View(m.keys))),
	)
}

// tabsView renders one tab per game, or just the current game with
// arrows when the tabs do not fit.
func (m ScoreboardModel) tabsView() string {
	if len(m.games) == 0 {
		return ""
	}

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.current {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width-4 {
		return activeTabStyle.Render("← " + m.games[m.current].Title + " →")
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	if len(m.scores) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// panelView renders the aggregate stats of the selected game.
func (m ScoreboardModel) panelView() string {
	var b strings.Builder
	b.WriteString(menuTitleStyle.Render("Stats"))
	b.WriteString("\n\n")

	if m.stats == nil {
		b.WriteString(menuDimStyle.Render("no runs yet"))
	} else {
		fmt.Fprintf(&b, "%-9s %d\n", "Best", m.stats.Best)
		fmt.Fprintf(&b, "%-9s %d\n", "Runs", m.stats.GamesCount)
		fmt.Fprintf(&b, "%-9s %d\n", "Players", m.stats.Players)
		fmt.Fprintf(&b, "%-9s %.0f\n", "Average", m.stats.AvgScore)
		fmt.Fprintf(&b, "%-9s %d\n", "Max lvl", m.stats.MaxLevel)
		if !m.stats.LastPlayed.IsZero() {
			fmt.Fprintf(&b, "%-9s %s\n", "Last", m.stats.LastPlayed.Format("Jan 02"))
		}
	}

	if len(m.games) > 0 && m.games[m.current].Summary != "" {
		b.WriteString("\n")
		b.WriteString(menuDimStyle.Render(m.games[m.current].Summary))
	}

	return boxStyle.Width(panelWidth).Render(b.String())
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
