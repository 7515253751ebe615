package config

import (
	_ "embed"
)

//go:embed defaults/dodge.yaml
var defaultDodgeYAML []byte

//go:embed defaults/dash.yaml
var defaultDashYAML []byte

//go:embed defaults/catch.yaml
var defaultCatchYAML []byte

// embeddedDefaults maps game IDs to their embedded YAML.
var embeddedDefaults = map[string][]byte{
	"dodge": defaultDodgeYAML,
	"dash":  defaultDashYAML,
	"catch": defaultCatchYAML,
}

// compiledDefaults maps game IDs to their hardcoded fallback.
var compiledDefaults = map[string]func() VariantConfig{
	"dodge": DefaultDodgeConfig,
	"dash":  DefaultDashConfig,
	"catch": DefaultCatchConfig,
}

// Default returns the compiled-in config for a game.
func Default(gameID string) (VariantConfig, bool) {
	fallback, ok := compiledDefaults[gameID]
	if !ok {
		return VariantConfig{}, false
	}
	return fallback(), true
}

func defaultPlayfield() PlayfieldConfig {
	return PlayfieldConfig{Width: 480, Height: 640, ExitMargin: 4}
}

func defaultClock() ClockConfig {
	return ClockConfig{NominalFrameMS: 1000.0 / 60.0, MaxFrameMS: 32, SlowFactor: 0.5}
}

// DefaultDodgeConfig returns the default Dodge the Blocks configuration.
func DefaultDodgeConfig() VariantConfig {
	return VariantConfig{
		ID:        "dodge",
		Title:     "Dodge the Blocks",
		Playfield: defaultPlayfield(),
		Clock:     defaultClock(),
		Player: PlayerConfig{
			Width:        56,
			Height:       16,
			BottomOffset: 48,
			Control:      ControlAccel,
			Accel:        0.9,
			Friction:     0.92,
			MaxSpeed:     6,
		},
		Session: SessionConfig{
			Lives:           1,
			MaxLives:        1,
			TricklePerFrame: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:    true,
			Mode:       ModeContinuous,
			RampFrames: 1500,
			Cap:        2.5,
		},
		Entities: []EntityConfig{
			{
				Name:     "block",
				Kind:     KindHazard,
				Shape:    ShapeRect,
				Width:    Range{Min: 60, Max: 160},
				Height:   Range{Min: 14, Max: 20},
				Speed:    Range{Min: 2.0, Max: 3.2},
				Interval: IntervalConfig{Base: 54, PerSpeed: 10.8, Floor: 15},
				Bonus:    BonusConfig{MinSpeed: 2.2, Chance: 0.35},
				OnExit:   ExitConfig{Action: ExitScore, Points: 5},
			},
		},
	}
}

// DefaultDashConfig returns the default Meteor Dash configuration.
func DefaultDashConfig() VariantConfig {
	return VariantConfig{
		ID:        "dash",
		Title:     "Meteor Dash",
		Playfield: defaultPlayfield(),
		Clock:     defaultClock(),
		Player: PlayerConfig{
			Width:              40,
			Height:             16,
			BottomOffset:       48,
			Control:            ControlAccel,
			Accel:              1.0,
			Friction:           0.9,
			MaxSpeed:           7,
			InvulnerableFrames: 60,
			Dash: DashConfig{
				Enabled:    true,
				Multiplier: 2.2,
				Duration:   10,
				Cooldown:   45,
			},
		},
		Session: SessionConfig{
			Lives:          3,
			MaxLives:       5,
			ExtraLifeEvery: 100,
			SlowFrames:     300,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			Mode:          ModeStepped,
			LevelEvery:    900,
			MaxLevel:      10,
			SpeedPerLevel: 0.15,
		},
		Entities: []EntityConfig{
			{
				Name:     "meteor",
				Kind:     KindHazard,
				Shape:    ShapeCircle,
				Radius:   Range{Min: 10, Max: 22},
				Speed:    Range{Min: 2.2, Max: 3.4},
				Interval: IntervalConfig{Base: 48, PerSpeed: 8, Floor: 16},
				Bonus:    BonusConfig{MinSpeed: 1.6, Chance: 0.2, ChancePerSpeed: 0.1},
				OnExit:   ExitConfig{Action: ExitScore, Points: 1},
			},
			{
				Name:     "orb",
				Kind:     KindCollectible,
				Shape:    ShapeCircle,
				Radius:   Range{Min: 7, Max: 9},
				Speed:    Range{Min: 2.0, Max: 2.6},
				Interval: IntervalConfig{Base: 90, PerSpeed: 6, Floor: 45},
				Reward:   RewardConfig{Points: 10, PerLevel: 2},
				OnExit:   ExitConfig{Action: ExitNone},
			},
			{
				Name:     "shield",
				Kind:     KindShield,
				Shape:    ShapeRect,
				Width:    Range{Min: 18, Max: 18},
				Height:   Range{Min: 18, Max: 18},
				Speed:    Range{Min: 2.0, Max: 2.0},
				Interval: IntervalConfig{Base: 900, PerSpeed: 60, Floor: 600},
				Chance:   0.6,
				MinLevel: 2,
				OnExit:   ExitConfig{Action: ExitNone},
			},
			{
				Name:     "hourglass",
				Kind:     KindSlow,
				Shape:    ShapeRect,
				Width:    Range{Min: 18, Max: 18},
				Height:   Range{Min: 18, Max: 18},
				Speed:    Range{Min: 2.0, Max: 2.0},
				Interval: IntervalConfig{Base: 1200, PerSpeed: 80, Floor: 800},
				Chance:   0.5,
				MinLevel: 3,
				OnExit:   ExitConfig{Action: ExitNone},
			},
		},
	}
}

// DefaultCatchConfig returns the default Catch Drop configuration.
func DefaultCatchConfig() VariantConfig {
	return VariantConfig{
		ID:        "catch",
		Title:     "Catch Drop",
		Playfield: defaultPlayfield(),
		Clock:     defaultClock(),
		Player: PlayerConfig{
			Width:              72,
			Height:             18,
			BottomOffset:       40,
			Control:            ControlDirect,
			MaxSpeed:           7,
			InvulnerableFrames: 30,
		},
		Session: SessionConfig{
			MissLimit:      5,
			ExtraLifeEvery: 150,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			Mode:          ModeStepped,
			LevelEvery:    1200,
			MaxLevel:      8,
			SpeedPerLevel: 0.2,
		},
		Entities: []EntityConfig{
			{
				Name:     "fruit",
				Kind:     KindCollectible,
				Shape:    ShapeCircle,
				Radius:   Range{Min: 10, Max: 14},
				Speed:    Range{Min: 1.8, Max: 2.6},
				Interval: IntervalConfig{Base: 60, PerSpeed: 8, Floor: 20},
				Bonus:    BonusConfig{MinSpeed: 1.8, Chance: 0.15},
				Reward:   RewardConfig{Points: 5, PerLevel: 1},
				OnExit:   ExitConfig{Action: ExitMiss},
			},
			{
				Name:     "bomb",
				Kind:     KindHazard,
				Shape:    ShapeCircle,
				Radius:   Range{Min: 10, Max: 12},
				Speed:    Range{Min: 2.2, Max: 3.0},
				Interval: IntervalConfig{Base: 240, PerSpeed: 20, Floor: 90},
				MinLevel: 2,
				OnExit:   ExitConfig{Action: ExitNone},
			},
		},
	}
}
