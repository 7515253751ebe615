package engine

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/drop-arcade/internal/config"
	"github.com/vovakirdan/drop-arcade/internal/core"
)

// EntityView is the render-facing copy of an entity.
type EntityView struct {
	Class  string
	Kind   Kind
	Shape  Shape
	Box    core.Box // bounding box in playfield units
	Radius float64  // circles only
}

// Snapshot is everything a render sink needs after a step.
type Snapshot struct {
	GameID string
	Title  string
	Phase  Phase
	Width  float64
	Height float64

	Player       core.Box
	Dashing      bool
	DashReady    bool
	HasDash      bool
	Invulnerable bool
	Entities     []EntityView

	Score      int
	Best       int
	NewBest    bool
	Lives      int
	Misses     int
	MissLimit  int
	Level      int
	Speed      float64
	Shield     int
	SlowFrames float64
	Elapsed    float64
	Stepped    bool // level-based difficulty rather than a speed ramp
}

// Snapshot captures the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		GameID:       s.cfg.ID,
		Title:        s.cfg.Title,
		Phase:        s.phase,
		Width:        s.cfg.Playfield.Width,
		Height:       s.cfg.Playfield.Height,
		Player:       s.player.Box(),
		Dashing:      s.player.Dashing(),
		DashReady:    s.cfg.Player.Dash.Enabled && s.player.DashCooldown <= 0,
		HasDash:      s.cfg.Player.Dash.Enabled,
		Invulnerable: s.player.Invulnerable > 0,
		Entities:     make([]EntityView, len(s.entities)),
		Score:        s.score,
		Best:         s.best,
		NewBest:      s.newBest,
		Lives:        s.lives,
		Misses:       s.misses,
		MissLimit:    s.cfg.Session.MissLimit,
		Level:        s.level,
		Speed:        s.speed,
		Shield:       s.shield,
		SlowFrames:   s.slowFrames,
		Elapsed:      s.elapsed,
		Stepped:      s.cfg.Difficulty.Mode == config.ModeStepped,
	}
	for i, e := range s.entities {
		snap.Entities[i] = EntityView{
			Class:  e.Class,
			Kind:   e.Kind,
			Shape:  e.Shape,
			Box:    e.Bounds(),
			Radius: e.R,
		}
	}
	return snap
}

// Hash returns an FNV-1a digest of the snapshot. Two sessions fed the same
// seed and inputs produce the same hash at every step.
func (snap Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	putF := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	putI := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}
	putBox := func(b core.Box) {
		putF(b.X)
		putF(b.Y)
		putF(b.W)
		putF(b.H)
	}

	h.Write([]byte(snap.GameID))
	putI(int(snap.Phase))
	putBox(snap.Player)
	putI(snap.Score)
	putI(snap.Lives)
	putI(snap.Misses)
	putI(snap.Level)
	putF(snap.Speed)
	putI(snap.Shield)
	putF(snap.SlowFrames)
	putF(snap.Elapsed)
	putI(len(snap.Entities))
	for _, e := range snap.Entities {
		h.Write([]byte(e.Class))
		putI(int(e.Kind))
		putBox(e.Box)
	}

	return h.Sum64()
}
