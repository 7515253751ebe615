package dash

import (
	"testing"

	"github.com/vovakirdan/drop-arcade/internal/core"
	"github.com/vovakirdan/drop-arcade/internal/registry"
)

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("%q not registered", ID)
	}
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", ID, err)
	}
	if g.Title() != "Meteor Dash" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestRunStartsWithThreeLives(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 11})

	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	res := g.Step(in)
	if res.State.Lives != 3 || res.State.Level != 1 {
		t.Errorf("initial state = %+v", res.State)
	}
	if !g.Config().Player.Dash.Enabled {
		t.Error("dash should be enabled")
	}
}

func TestRunEnds(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 5})

	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)

	var res core.StepResult
	for i := 0; i < 100000 && !res.State.GameOver; i++ {
		res = g.Step(core.NewInputFrame())
	}
	if !res.State.GameOver {
		t.Fatal("standing still should eventually lose every life")
	}
	if res.State.Lives != 0 {
		t.Errorf("Lives = %d at game over", res.State.Lives)
	}
}
