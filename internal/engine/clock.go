package engine

import (
	"math"

	"github.com/vovakirdan/drop-arcade/internal/config"
)

// Default clock parameters, used when the config leaves them at zero.
const (
	DefaultNominalFrameMS = 1000.0 / 60.0
	DefaultMaxFrameMS     = 32.0
	DefaultSlowFactor     = 0.5
)

// Clock turns raw frame timestamps into a step multiplier where one nominal
// frame is 1.0.
type Clock struct {
	nominal float64
	max     float64
	slow    float64
	last    float64
	started bool
}

// NewClock creates a clock from config, filling in defaults.
func NewClock(cfg config.ClockConfig) *Clock {
	c := &Clock{
		nominal: cfg.NominalFrameMS,
		max:     cfg.MaxFrameMS,
		slow:    cfg.SlowFactor,
	}
	if c.nominal <= 0 {
		c.nominal = DefaultNominalFrameMS
	}
	if c.max <= 0 {
		c.max = DefaultMaxFrameMS
	}
	if c.slow <= 0 || c.slow > 1 {
		c.slow = DefaultSlowFactor
	}
	return c
}

// Reset forgets the previous timestamp so the next Tick returns 1.0.
func (c *Clock) Reset() {
	c.started = false
	c.last = 0
}

// Tick records the timestamp (milliseconds) and returns the step multiplier.
// Stalls are capped at the max frame duration; a repeated or backwards
// timestamp counts as one nominal frame.
func (c *Clock) Tick(ts float64) float64 {
	if !c.started {
		c.started = true
		c.last = ts
		return 1.0
	}

	delta := ts - c.last
	c.last = ts
	if delta <= 0 || math.IsNaN(delta) {
		return 1.0
	}
	return math.Min(delta, c.max) / c.nominal
}

// Scale applies the slow-motion factor when slow motion is active.
func (c *Clock) Scale(dt float64, slowActive bool) float64 {
	if slowActive {
		return dt * c.slow
	}
	return dt
}
