package engine

import (
	"math"

	"github.com/vovakirdan/drop-arcade/internal/config"
	"github.com/vovakirdan/drop-arcade/internal/core"
)

// Player is the paddle-like body at the bottom of the playfield.
type Player struct {
	X, Y float64 // Top-left corner
	W, H float64
	VX   float64

	DashTimer    float64 // frames of dash left
	DashCooldown float64 // frames until the next dash
	Invulnerable float64 // frames of invulnerability left
}

// Box returns the player's collision box.
func (p Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// Dashing reports whether a dash burst is in progress.
func (p Player) Dashing() bool {
	return p.DashTimer > 0
}

// newPlayer places the player centered horizontally at its start height.
func newPlayer(cfg config.PlayerConfig, pf config.PlayfieldConfig) Player {
	return Player{
		X: (pf.Width - cfg.Width) / 2,
		Y: pf.Height - cfg.BottomOffset,
		W: cfg.Width,
		H: cfg.Height,
	}
}

// StepPlayer applies one step of input to the player and keeps it inside
// [0, fieldW-W]. It returns true when a dash started this step.
func StepPlayer(p *Player, cfg config.PlayerConfig, in Input, dt, fieldW float64) bool {
	dashed := false
	dir := in.Dir()

	if cfg.Dash.Enabled && in.Action && p.DashCooldown <= 0 {
		burst := dir
		if burst == 0 {
			burst = sign(p.VX)
		}
		p.VX = burst * cfg.MaxSpeed * cfg.Dash.Multiplier
		p.DashTimer = cfg.Dash.Duration
		p.DashCooldown = cfg.Dash.Cooldown
		dashed = true
	}

	// The burst velocity is held for the whole dash.
	if !p.Dashing() {
		switch cfg.Control {
		case config.ControlDirect:
			p.VX = dir * cfg.MaxSpeed
		default:
			p.VX += cfg.Accel * dir
			p.VX *= cfg.Friction
		}
	}

	limit := cfg.MaxSpeed
	if p.Dashing() {
		limit *= cfg.Dash.Multiplier
	}
	p.VX = core.ClampF(p.VX, -limit, limit)

	if dt > 0 {
		p.X += p.VX * dt
	}
	p.X = core.ClampF(p.X, 0, math.Max(0, fieldW-p.W))

	if !dashed {
		p.DashTimer = math.Max(0, p.DashTimer-dt)
		p.DashCooldown = math.Max(0, p.DashCooldown-dt)
	}
	p.Invulnerable = math.Max(0, p.Invulnerable-dt)

	return dashed
}

// MoveEntities advances every entity down by its own velocity.
func MoveEntities(entities []Entity, dt float64) {
	for i := range entities {
		entities[i].Y += entities[i].VY * dt
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
