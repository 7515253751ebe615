package config

import "math"

// DifficultyManager derives the speed multiplier and level from elapsed
// nominal frames.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// headStart converts the initial level into frames of progress already made.
func (d *DifficultyManager) headStart() float64 {
	switch d.cfg.Mode {
	case ModeStepped:
		levels := float64(d.cfg.MaxLevel - 1)
		if levels < 0 {
			levels = 0
		}
		return d.initialLevel * levels * d.cfg.LevelEvery
	default:
		return d.initialLevel * d.cfg.Cap * d.cfg.RampFrames
	}
}

// effective returns the progress in frames used for speed and level.
// With progression disabled the head start stays frozen.
func (d *DifficultyManager) effective(elapsed float64) float64 {
	if !d.cfg.Enabled {
		return d.headStart()
	}
	return d.headStart() + math.Max(0, elapsed)
}

// Speed returns the speed multiplier (>= 1) after elapsed nominal frames.
func (d *DifficultyManager) Speed(elapsed float64) float64 {
	e := d.effective(elapsed)

	switch d.cfg.Mode {
	case ModeStepped:
		return 1 + float64(d.steppedLevel(e)-1)*d.cfg.SpeedPerLevel
	default:
		if d.cfg.RampFrames <= 0 {
			return 1
		}
		return 1 + math.Min(d.cfg.Cap, e/d.cfg.RampFrames)
	}
}

// Level returns the displayed level (>= 1) after elapsed nominal frames.
func (d *DifficultyManager) Level(elapsed float64) int {
	e := d.effective(elapsed)

	switch d.cfg.Mode {
	case ModeStepped:
		return d.steppedLevel(e)
	default:
		return int(math.Floor(d.Speed(elapsed)))
	}
}

func (d *DifficultyManager) steppedLevel(e float64) int {
	if d.cfg.LevelEvery <= 0 {
		return 1
	}
	level := 1 + int(math.Floor(e/d.cfg.LevelEvery))
	if d.cfg.MaxLevel > 0 && level > d.cfg.MaxLevel {
		level = d.cfg.MaxLevel
	}
	return level
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
