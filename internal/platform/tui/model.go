package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/drop-arcade/internal/core"
	"github.com/vovakirdan/drop-arcade/internal/registry"
	"github.com/vovakirdan/drop-arcade/internal/storage"
)

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	player     string // recorded with each run
	config     core.RuntimeConfig
	keys       *KeyMapper
	held       heldKeys
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	embedded   bool // Hosted by a SessionModel, which handles back-to-menu
	backToMenu bool
	scoreSaved bool // Whether the run has been recorded for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	if store != nil {
		registry.AttachBest(game, store)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		player:     LocalPlayer(),
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// newEmbeddedModel creates a game model driven by a parent model.
func newEmbeddedModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) Model {
	m := NewModel(game, store, cfg).WithPlayer(player)
	m.embedded = true
	return m
}

// WithPlayer sets the name recorded with finished runs. An empty name
// keeps the current one.
func (m Model) WithPlayer(name string) Model {
	if name != "" {
		m.player = name
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		// Leaving mid-run would drop it, so only from pause or game over
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if !m.embedded {
				return m, tea.Quit
			}
		}
	case core.ActionLeft, core.ActionRight:
		m.held.press(action, m.config.TickRate)
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The game scales its
// playfield to the screen, so the run continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one simulation step with the input gathered since the
// previous tick.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	m.held.apply(&m.inputFrame)
	m.inputFrame.At = time.Time(msg)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if m.gameState.Paused || m.gameState.GameOver {
		m.held.release()
	}

	// Record the run on game over (once)
	switch {
	case !m.gameState.GameOver:
		m.scoreSaved = false
	case !m.scoreSaved:
		m.recordRun()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordRun appends the finished run to the score history.
func (m Model) recordRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	run := storage.Run{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.gameState.Score,
		Level:  m.gameState.Level,
	}
	if _, err := m.store.RecordRun(run); err != nil {
		log.Warn("failed to record run", "game", run.GameID, "player", run.Player, "score", run.Score, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("failed to create screenshot directory", "dir", dir, "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		log.Warn("failed to save screenshot", "path", path, "err", err)
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run plays game in the local terminal until the player quits. Runs are
// recorded under player, or the login name when it is empty.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) error {
	model := NewModel(game, store, cfg).WithPlayer(player)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
