// Package falling adapts the arcade loop engine to the registry.Game
// interface. Every falling-object game is a falling.Game built from its own
// VariantConfig and Theme.
package falling

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/drop-arcade/internal/config"
	"github.com/vovakirdan/drop-arcade/internal/core"
	"github.com/vovakirdan/drop-arcade/internal/engine"
)

// Game wraps one engine.Session and maps platform input onto it.
type Game struct {
	cfg     config.VariantConfig
	theme   Theme
	session *engine.Session
	store   engine.BestStore
	logger  *log.Logger
	runtime core.RuntimeConfig

	tick  int       // Steps since Reset, used when frames carry no timestamp
	epoch time.Time // First platform timestamp since Reset
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger handed to every session.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a game for the given variant. Reset must be called before
// the first Step; until then the session runs on a time-based seed.
func New(cfg config.VariantConfig, theme Theme, opts ...Option) *Game {
	g := &Game{
		cfg:    cfg,
		theme:  theme.withConfig(cfg),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.session = g.newSession(0)
	return g
}

func (g *Game) newSession(seed int64) *engine.Session {
	opts := []engine.Option{engine.WithLogger(g.logger)}
	if seed != 0 {
		opts = append(opts, engine.WithSeed(seed))
	}
	if g.session != nil {
		opts = append(opts, engine.WithBest(g.session.Best()))
	}
	if g.store != nil {
		opts = append(opts, engine.WithBestStore(g.store))
	}
	return engine.NewSession(g.cfg, opts...)
}

// ID returns the variant ID.
func (g *Game) ID() string {
	return g.cfg.ID
}

// Title returns the variant title.
func (g *Game) Title() string {
	return g.cfg.Title
}

// Summary returns a one-line description of the rules.
func (g *Game) Summary() string {
	return g.cfg.Summary()
}

// Config returns the variant configuration the game was built from.
func (g *Game) Config() config.VariantConfig {
	return g.cfg
}

// Session exposes the underlying engine session.
func (g *Game) Session() *engine.Session {
	return g.session
}

// AttachBest connects best-score persistence.
func (g *Game) AttachBest(store engine.BestStore) {
	g.store = store
	g.session.SetBestStore(store)
}

// Reset builds a fresh Idle session seeded from cfg.Seed. A zero seed
// picks a time-based one. The best score carries over.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.tick = 0
	g.epoch = time.Time{}
	g.session = g.newSession(cfg.Seed)
}

// Step applies lifecycle actions, then advances the session by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	ts := g.timestamp(in)
	g.tick++

	started := false
	phase := g.session.Phase()
	switch {
	case in.Has(core.ActionRestart):
		g.session.Restart()
		started = true
	case (in.Has(core.ActionConfirm) || in.Has(core.ActionJump)) &&
		(phase == engine.PhaseIdle || phase == engine.PhaseGameOver):
		g.session.Start()
		started = true
	case in.Has(core.ActionPause):
		g.session.TogglePause()
	}

	// The key that started the run must not also trigger a dash.
	res := g.session.Step(ts, engine.Input{
		Left:   in.Has(core.ActionLeft),
		Right:  in.Has(core.ActionRight),
		Action: in.Has(core.ActionJump) && !started,
	})

	var events []string
	for _, ev := range res.Events {
		events = append(events, string(ev))
	}
	return core.StepResult{State: g.State(), Events: events}
}

// timestamp converts the frame time into milliseconds since Reset. Frames
// without a timestamp advance by exactly one tick interval.
func (g *Game) timestamp(in core.InputFrame) float64 {
	if in.At.IsZero() {
		return float64(g.tick) * g.runtime.FrameMS()
	}
	if g.epoch.IsZero() {
		g.epoch = in.At
	}
	return float64(in.At.Sub(g.epoch)) / float64(time.Millisecond)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.session
	phase := s.Phase()
	return core.GameState{
		Score:    s.Score(),
		Best:     s.Best(),
		Lives:    s.Lives(),
		Misses:   s.Misses(),
		Level:    s.Level(),
		Started:  phase != engine.PhaseIdle,
		GameOver: phase == engine.PhaseGameOver,
		Paused:   phase == engine.PhasePaused,
	}
}
