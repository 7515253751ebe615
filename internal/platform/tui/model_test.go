package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/drop-arcade/internal/core"
	"github.com/vovakirdan/drop-arcade/internal/engine"
	"github.com/vovakirdan/drop-arcade/internal/storage"
)

// scriptedGame records the frames it receives and ends the run on demand.
type scriptedGame struct {
	frames   []core.InputFrame
	state    core.GameState
	attached engine.BestStore
}

func (g *scriptedGame) ID() string { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) { g.state = core.GameState{Level: 1} }
func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) State() core.GameState { return g.state }
func (g *scriptedGame) AttachBest(s engine.BestStore) { g.attached = s }

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	if in.Has(core.ActionRestart) {
		g.state = core.GameState{Level: 1, Started: true}
	}
	return core.StepResult{State: g.state}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(g *scriptedGame, store *storage.Store) Model {
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1})
	m.Init()
	return m
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelLatchesHeldDirection(t *testing.T) {
	g := &scriptedGame{}
	m := newTestModel(g, nil)

	m = send(m, keyMsg("left"))
	start := time.Now()
	hold := ticksFor(firstHold, 60)
	for i := 0; i < hold+5; i++ {
		m = send(m, TickMsg(start.Add(time.Duration(i)*16*time.Millisecond)))
	}

	for i, f := range g.frames {
		want := i < hold
		if f.Has(core.ActionLeft) != want {
			t.Fatalf("frame %d: left held = %v, expected %v", i, f.Has(core.ActionLeft), want)
		}
	}
	if g.frames[0].At.IsZero() {
		t.Error("tick timestamp should be passed to the game")
	}
}

func TestModelOppositeKeyReplacesDirection(t *testing.T) {
	g := &scriptedGame{}
	m := newTestModel(g, nil)

	m = send(m, keyMsg("a"))
	m = send(m, TickMsg(time.Now()))
	m = send(m, keyMsg("d"))
	m = send(m, TickMsg(time.Now()))

	last := g.frames[len(g.frames)-1]
	if last.Has(core.ActionLeft) || !last.Has(core.ActionRight) {
		t.Errorf("expected only right held, got %v", last.Actions)
	}
}

func TestModelActionsLastOneTick(t *testing.T) {
	g := &scriptedGame{}
	m := newTestModel(g, nil)

	m = send(m, keyMsg(" "))
	m = send(m, keyMsg("p"))
	m = send(m, TickMsg(time.Now()))
	m = send(m, TickMsg(time.Now()))

	if !g.frames[0].Has(core.ActionJump) || !g.frames[0].Has(core.ActionPause) {
		t.Errorf("first frame actions = %v", g.frames[0].Actions)
	}
	if len(g.frames[1].Actions) != 0 {
		t.Errorf("actions should be cleared after a tick, got %v", g.frames[1].Actions)
	}
}

func TestModelRecordsRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &scriptedGame{}
	m := newTestModel(g, store).WithPlayer("ann")
	if g.attached == nil {
		t.Fatal("store should be attached as the best-score store")
	}

	m = send(m, TickMsg(time.Now()))
	g.state = core.GameState{Score: 42, Level: 3, Started: true, GameOver: true}
	for i := 0; i < 3; i++ {
		m = send(m, TickMsg(time.Now()))
	}

	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 42 || scores[0].Level != 3 || scores[0].Player != "ann" {
		t.Fatalf("expected one run of 42 at level 3 by ann, got %+v", scores)
	}

	// A restart arms recording for the next game over.
	m = send(m, keyMsg("r"))
	m = send(m, TickMsg(time.Now()))
	g.state = core.GameState{Score: 7, Level: 1, Started: true, GameOver: true}
	m = send(m, TickMsg(time.Now()))

	scores, _ = store.AllScores("scripted")
	if len(scores) != 2 {
		t.Errorf("expected 2 recorded runs, got %d", len(scores))
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	g := &scriptedGame{}
	m := newEmbeddedModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60}, "guest")
	m.Init()
	if m.player != "guest" {
		t.Errorf("player = %q, want guest", m.player)
	}

	g.state = core.GameState{Started: true}
	m = send(m, TickMsg(time.Now()))
	m = send(m, keyMsg("b"))
	if m.BackToMenu() {
		t.Fatal("back must be ignored while running")
	}

	g.state = core.GameState{Started: true, Paused: true}
	m = send(m, TickMsg(time.Now()))
	m = send(m, keyMsg("b"))
	if !m.BackToMenu() {
		t.Error("back should work while paused")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(&scriptedGame{}, nil)
	next, cmd := m.Update(keyMsg("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestWithPlayerKeepsNameWhenEmpty(t *testing.T) {
	m := newTestModel(&scriptedGame{}, nil)
	local := m.player
	if m.WithPlayer("").player != local {
		t.Error("an empty name should keep the current player")
	}
	if m.WithPlayer("bob").player != "bob" {
		t.Error("WithPlayer should set the name")
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{0, time.Second},
		{-5, time.Second},
		{1000, time.Second / maxTickRate},
	}
	for _, tt := range tests {
		if got := tickInterval(tt.rate); got != tt.want {
			t.Errorf("tickInterval(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
