// Package config provides YAML/TOML game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/drop-arcade/internal/core"
)

// Entity kinds.
const (
	KindHazard      = "hazard"
	KindCollectible = "collectible"
	KindShield      = "powerup-shield"
	KindSlow        = "powerup-slow"
)

// Entity shapes.
const (
	ShapeRect   = "rect"
	ShapeCircle = "circle"
)

// Player control schemes.
const (
	ControlAccel  = "accel"  // acceleration + friction
	ControlDirect = "direct" // velocity set directly from input
)

// Exit outcomes for entities that fall past the bottom edge.
const (
	ExitNone  = "none"
	ExitScore = "score"
	ExitMiss  = "miss"
)

// Difficulty progression modes.
const (
	ModeContinuous = "continuous"
	ModeStepped    = "stepped"
)

// VariantConfig contains all configuration for one game built on the engine.
type VariantConfig struct {
	ID         string           `yaml:"id" toml:"id"`
	Title      string           `yaml:"title" toml:"title"`
	Playfield  PlayfieldConfig  `yaml:"playfield" toml:"playfield"`
	Clock      ClockConfig      `yaml:"clock" toml:"clock"`
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	Session    SessionConfig    `yaml:"session" toml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	Entities   []EntityConfig   `yaml:"entities" toml:"entities"`
}

// PlayfieldConfig defines the logical playfield size in playfield units.
type PlayfieldConfig struct {
	Width      float64 `yaml:"width" toml:"width"`
	Height     float64 `yaml:"height" toml:"height"`
	ExitMargin float64 `yaml:"exit_margin" toml:"exit_margin"` // Extra distance below the bottom before an entity counts as gone
}

// ClockConfig defines frame normalization.
type ClockConfig struct {
	NominalFrameMS float64 `yaml:"nominal_frame_ms" toml:"nominal_frame_ms"`
	MaxFrameMS     float64 `yaml:"max_frame_ms" toml:"max_frame_ms"`
	SlowFactor     float64 `yaml:"slow_factor" toml:"slow_factor"`
}

// PlayerConfig defines the player body and controls.
type PlayerConfig struct {
	Width              float64    `yaml:"width" toml:"width"`
	Height             float64    `yaml:"height" toml:"height"`
	BottomOffset       float64    `yaml:"bottom_offset" toml:"bottom_offset"` // Distance from the bottom edge to the player's top
	Control            string     `yaml:"control" toml:"control"`
	Accel              float64    `yaml:"accel" toml:"accel"`
	Friction           float64    `yaml:"friction" toml:"friction"`
	MaxSpeed           float64    `yaml:"max_speed" toml:"max_speed"`
	InvulnerableFrames float64    `yaml:"invulnerable_frames" toml:"invulnerable_frames"`
	Dash               DashConfig `yaml:"dash" toml:"dash"`
}

// DashConfig defines the dash burst.
type DashConfig struct {
	Enabled    bool    `yaml:"enabled" toml:"enabled"`
	Multiplier float64 `yaml:"multiplier" toml:"multiplier"`
	Duration   float64 `yaml:"duration" toml:"duration"` // frames
	Cooldown   float64 `yaml:"cooldown" toml:"cooldown"` // frames
}

// SessionConfig defines lives, misses and passive scoring.
type SessionConfig struct {
	Lives           int     `yaml:"lives" toml:"lives"`
	MaxLives        int     `yaml:"max_lives" toml:"max_lives"`
	MissLimit       int     `yaml:"miss_limit" toml:"miss_limit"` // > 0 switches the session to miss-limited play
	TricklePerFrame float64 `yaml:"trickle_per_frame" toml:"trickle_per_frame"`
	ExtraLifeEvery  int     `yaml:"extra_life_every" toml:"extra_life_every"`
	SlowFrames      float64 `yaml:"slow_frames" toml:"slow_frames"`
}

// MissMode reports whether runs end on a miss limit instead of lives.
func (s SessionConfig) MissMode() bool {
	return s.MissLimit > 0
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled       bool    `yaml:"enabled" toml:"enabled"`
	Mode          string  `yaml:"mode" toml:"mode"`
	InitialLevel  float64 `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	RampFrames    float64 `yaml:"ramp_frames" toml:"ramp_frames"`     // continuous: frames per +1.0 speed
	Cap           float64 `yaml:"cap" toml:"cap"`                     // continuous: max speed bonus
	LevelEvery    float64 `yaml:"level_every" toml:"level_every"`     // stepped: frames per level
	MaxLevel      int     `yaml:"max_level" toml:"max_level"`
	SpeedPerLevel float64 `yaml:"speed_per_level" toml:"speed_per_level"`
}

// Range is an inclusive uniform range.
type Range struct {
	Min float64 `yaml:"min" toml:"min"`
	Max float64 `yaml:"max" toml:"max"`
}

// EntityConfig defines one independently spawned entity class.
type EntityConfig struct {
	Name     string         `yaml:"name" toml:"name"`
	Kind     string         `yaml:"kind" toml:"kind"`
	Shape    string         `yaml:"shape" toml:"shape"`
	Width    Range          `yaml:"width" toml:"width"`
	Height   Range          `yaml:"height" toml:"height"`
	Radius   Range          `yaml:"radius" toml:"radius"`
	Speed    Range          `yaml:"speed" toml:"speed"` // Fall speed before the difficulty multiplier
	Interval IntervalConfig `yaml:"interval" toml:"interval"`
	Chance   float64        `yaml:"chance" toml:"chance"` // Probability a due spawn happens; 0 means always
	MinLevel int            `yaml:"min_level" toml:"min_level"`
	Bonus    BonusConfig    `yaml:"bonus" toml:"bonus"`
	Reward   RewardConfig   `yaml:"reward" toml:"reward"`
	OnExit   ExitConfig     `yaml:"on_exit" toml:"on_exit"`
	Glyph    string         `yaml:"glyph" toml:"glyph"` // Optional single character drawn for the class
	Color    string         `yaml:"color" toml:"color"` // Optional color name, see core.ParseColor
}

// IntervalConfig defines the spawn interval in frames as a function of speed.
type IntervalConfig struct {
	Base     float64 `yaml:"base" toml:"base"`
	PerSpeed float64 `yaml:"per_speed" toml:"per_speed"`
	Floor    float64 `yaml:"floor" toml:"floor"`
}

// BonusConfig defines the extra simultaneous spawn.
type BonusConfig struct {
	MinSpeed       float64 `yaml:"min_speed" toml:"min_speed"`
	Chance         float64 `yaml:"chance" toml:"chance"`
	ChancePerSpeed float64 `yaml:"chance_per_speed" toml:"chance_per_speed"`
}

// RewardConfig defines points for catching a collectible.
type RewardConfig struct {
	Points   int `yaml:"points" toml:"points"`
	PerLevel int `yaml:"per_level" toml:"per_level"`
}

// ExitConfig defines what happens when an entity falls past the bottom.
type ExitConfig struct {
	Action string `yaml:"action" toml:"action"`
	Points int    `yaml:"points" toml:"points"`
}

// Validate checks that the configuration can drive a session.
func (c VariantConfig) Validate() error {
	var errs []error

	if c.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		errs = append(errs, fmt.Errorf("playfield must be positive, got %gx%g", c.Playfield.Width, c.Playfield.Height))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Player.Width > c.Playfield.Width {
		errs = append(errs, errors.New("player is wider than the playfield"))
	}
	switch c.Player.Control {
	case ControlAccel, ControlDirect:
	default:
		errs = append(errs, fmt.Errorf("unknown player control %q", c.Player.Control))
	}
	if c.Player.MaxSpeed <= 0 {
		errs = append(errs, errors.New("player max_speed must be positive"))
	}
	if c.Session.Lives <= 0 && !c.Session.MissMode() {
		errs = append(errs, errors.New("session needs lives or a miss_limit"))
	}
	switch c.Difficulty.Mode {
	case ModeContinuous:
		if c.Difficulty.RampFrames <= 0 {
			errs = append(errs, errors.New("continuous difficulty needs ramp_frames > 0"))
		}
	case ModeStepped:
		if c.Difficulty.LevelEvery <= 0 {
			errs = append(errs, errors.New("stepped difficulty needs level_every > 0"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown difficulty mode %q", c.Difficulty.Mode))
	}
	if len(c.Entities) == 0 {
		errs = append(errs, errors.New("at least one entity class is required"))
	}
	for _, e := range c.Entities {
		if err := e.validate(c.Playfield); err != nil {
			errs = append(errs, fmt.Errorf("entity %q: %w", e.Name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config %s: %w", c.ID, errors.Join(errs...))
	}
	return nil
}

// Summary describes the rules in one short line, e.g.
// "3 lives, dash, power-ups".
func (c VariantConfig) Summary() string {
	var parts []string

	switch {
	case c.Session.MissMode():
		parts = append(parts, fmt.Sprintf("%d misses allowed", c.Session.MissLimit))
	case c.Session.Lives == 1:
		parts = append(parts, "one hit ends it")
	default:
		parts = append(parts, fmt.Sprintf("%d lives", c.Session.Lives))
	}
	if c.Player.Dash.Enabled {
		parts = append(parts, "dash")
	}

	var catches, powerups bool
	for _, e := range c.Entities {
		switch e.Kind {
		case KindCollectible:
			catches = true
		case KindShield, KindSlow:
			powerups = true
		}
	}
	if catches {
		parts = append(parts, "catch to score")
	}
	if powerups {
		parts = append(parts, "power-ups")
	}
	return strings.Join(parts, ", ")
}

func (e EntityConfig) validate(pf PlayfieldConfig) error {
	switch e.Kind {
	case KindHazard, KindCollectible, KindShield, KindSlow:
	default:
		return fmt.Errorf("unknown kind %q", e.Kind)
	}
	switch e.Shape {
	case ShapeRect:
		if err := e.Width.validate("width"); err != nil {
			return err
		}
		if err := e.Height.validate("height"); err != nil {
			return err
		}
		if e.Width.Max > pf.Width {
			return errors.New("width exceeds playfield")
		}
	case ShapeCircle:
		if err := e.Radius.validate("radius"); err != nil {
			return err
		}
		if 2*e.Radius.Max > pf.Width {
			return errors.New("diameter exceeds playfield")
		}
	default:
		return fmt.Errorf("unknown shape %q", e.Shape)
	}
	if err := e.Speed.validate("speed"); err != nil {
		return err
	}
	if e.Interval.Base <= 0 || e.Interval.Floor <= 0 || e.Interval.Floor > e.Interval.Base {
		return fmt.Errorf("interval needs 0 < floor <= base, got floor=%g base=%g", e.Interval.Floor, e.Interval.Base)
	}
	switch e.OnExit.Action {
	case "", ExitNone, ExitScore, ExitMiss:
	default:
		return fmt.Errorf("unknown exit action %q", e.OnExit.Action)
	}
	if e.Glyph != "" && utf8.RuneCountInString(e.Glyph) != 1 {
		return fmt.Errorf("glyph must be a single character, got %q", e.Glyph)
	}
	if e.Color != "" {
		if _, err := core.ParseColor(e.Color); err != nil {
			return err
		}
	}
	return nil
}

func (r Range) validate(name string) error {
	if r.Min <= 0 || r.Max < r.Min {
		return fmt.Errorf("%s range must satisfy 0 < min <= max, got [%g, %g]", name, r.Min, r.Max)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *VariantConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Lives-based games get a little slack on easy and less on hard
	if cfg.Session.MissMode() {
		switch preset {
		case DifficultyEasy:
			cfg.Session.MissLimit += 2
		case DifficultyHard:
			cfg.Session.MissLimit = max(1, cfg.Session.MissLimit-2)
		}
		return
	}
	if cfg.Session.Lives > 1 {
		switch preset {
		case DifficultyEasy:
			cfg.Session.Lives++
			cfg.Session.MaxLives = max(cfg.Session.MaxLives, cfg.Session.Lives)
		case DifficultyHard:
			cfg.Session.Lives--
		}
	}
}
