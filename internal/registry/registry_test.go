package registry

import (
	"testing"

	"github.com/vovakirdan/drop-arcade/internal/core"
	"github.com/vovakirdan/drop-arcade/internal/engine"
)

type stubGame struct {
	id, title, summary string
	store              engine.BestStore
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

type describedGame struct{ stubGame }

func (g *describedGame) Summary() string { return g.summary }

func (g *describedGame) AttachBest(store engine.BestStore) { g.store = store }

type nopStore struct{}

func (nopStore) LoadBest(string) (int, error) { return 0, nil }
func (nopStore) SaveBest(string, int) error { return nil }

func init() {
	Register("zz-plain", func() Game { return &stubGame{id: "zz-plain", title: "Plain"} })
	Register("aa-described", func() Game {
		return &describedGame{stubGame{id: "aa-described", title: "Described", summary: "two lives"}}
	})
}

func TestListSortedWithSummaries(t *testing.T) {
	games := List()
	if len(games) < 2 {
		t.Fatalf("List() returned %d games", len(games))
	}
	for i := 1; i < len(games); i++ {
		if games[i-1].ID >= games[i].ID {
			t.Errorf("List() not sorted: %q before %q", games[i-1].ID, games[i].ID)
		}
	}

	info, ok := Info("aa-described")
	if !ok || info.Title != "Described" || info.Summary != "two lives" {
		t.Errorf("Info(aa-described) = %+v, %v", info, ok)
	}
	info, ok = Info("zz-plain")
	if !ok || info.Summary != "" {
		t.Errorf("Info(zz-plain) = %+v, %v", info, ok)
	}
	if _, ok := Info("missing"); ok {
		t.Error("Info(missing) reported a game")
	}
}

func TestCreate(t *testing.T) {
	g, err := Create("zz-plain")
	if err != nil || g.ID() != "zz-plain" {
		t.Fatalf("Create(zz-plain) = %v, %v", g, err)
	}
	if _, err := Create("missing"); err == nil {
		t.Error("Create(missing) should fail")
	}
	if !Exists("aa-described") || Exists("missing") {
		t.Error("Exists() mismatch")
	}
}

func TestRegisterTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate ID should panic")
		}
	}()
	Register("zz-plain", func() Game { return &stubGame{id: "zz-plain"} })
}

func TestAttachBest(t *testing.T) {
	g := &describedGame{}
	AttachBest(g, nopStore{})
	if g.store == nil {
		t.Error("AttachBest did not reach a BestTracker")
	}

	// Games without the hook are left alone
	AttachBest(&stubGame{}, nopStore{})

	g2 := &describedGame{}
	AttachBest(g2, nil)
	if g2.store != nil {
		t.Error("AttachBest attached a nil store")
	}
}
