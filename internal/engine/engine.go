// Package engine implements the arcade loop shared by the falling-object
// games: a frame clock, per-class entity spawners, player and entity physics,
// collision outcomes and the session state machine.
//
// The engine knows nothing about terminals. A host calls Session.Step once
// per frame with a timestamp and the sampled input, then paints
// Session.Snapshot however it likes.
package engine

import (
	"math/rand"

	"github.com/vovakirdan/drop-arcade/internal/config"
)

// Source is the random number source used for spawning.
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded pseudo-random source.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// uniform draws a value from [r.Min, r.Max).
func uniform(src Source, r config.Range) float64 {
	return r.Min + src.Float64()*(r.Max-r.Min)
}

// BestStore persists one best score per game.
type BestStore interface {
	LoadBest(gameID string) (int, error)
	SaveBest(gameID string, score int) error
}

// Input is the per-step input sample.
type Input struct {
	Left   bool
	Right  bool
	Action bool // dash in games that have one
}

// Dir returns -1, 0 or +1 for the horizontal direction held.
func (in Input) Dir() float64 {
	var d float64
	if in.Left {
		d--
	}
	if in.Right {
		d++
	}
	return d
}

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Event is something notable that happened during a step.
type Event string

const (
	EventCollect     Event = "collect"
	EventHit         Event = "hit"
	EventShieldBreak Event = "shield-break"
	EventBlocked     Event = "blocked" // hazard touched an invulnerable player
	EventShield      Event = "shield"
	EventSlow        Event = "slow"
	EventExitScore   Event = "exit-score"
	EventMiss        Event = "miss"
	EventExtraLife   Event = "extra-life"
	EventDash        Event = "dash"
	EventLevelUp     Event = "level-up"
	EventGameOver    Event = "game-over"
	EventNewBest     Event = "new-best"
)

// StepResult is returned from Session.Step.
type StepResult struct {
	Phase  Phase
	DT     float64 // normalized step multiplier from the clock
	Events []Event
}
