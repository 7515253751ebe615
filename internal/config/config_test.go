package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchCompiled(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // keep user configs out of the search path

	for id, fallback := range compiledDefaults {
		t.Run(id, func(t *testing.T) {
			cfg, err := Load(id, "")
			if err != nil {
				t.Fatalf("Load(%q) error: %v", id, err)
			}
			if !reflect.DeepEqual(cfg, fallback()) {
				t.Errorf("embedded %s.yaml differs from compiled default:\n got  %+v\n want %+v", id, cfg, fallback())
			}
		})
	}
}

func TestDefaultsValidate(t *testing.T) {
	for id, fallback := range compiledDefaults {
		if err := fallback().Validate(); err != nil {
			t.Errorf("default %s config invalid: %v", id, err)
		}
	}
}

func TestLoadUnknownGame(t *testing.T) {
	if _, err := Load("no-such-game", ""); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestLoadCustomYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.yaml")
	data := `
title: Custom
playfield: { width: 200, height: 300 }
player: { width: 20, height: 10, control: direct, max_speed: 5 }
session: { lives: 2 }
difficulty: { mode: continuous, ramp_frames: 100, cap: 1 }
entities:
  - name: rock
    kind: hazard
    shape: rect
    width: { min: 10, max: 20 }
    height: { min: 5, max: 5 }
    speed: { min: 1, max: 2 }
    interval: { base: 30, floor: 10 }
    glyph: "*"
    color: bright-red
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("dodge", path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ID != "dodge" {
		t.Errorf("ID = %q, expected dodge to be filled in", cfg.ID)
	}
	if cfg.Title != "Custom" || cfg.Playfield.Width != 200 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.Entities) != 1 || cfg.Entities[0].Width.Max != 20 || cfg.Entities[0].Glyph != "*" {
		t.Errorf("unexpected entities: %+v", cfg.Entities)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	data := `
id = "catch"
title = "Catch TOML"

[playfield]
width = 320
height = 480

[player]
width = 40
height = 12
control = "direct"
max_speed = 6

[session]
miss_limit = 3

[difficulty]
enabled = true
mode = "stepped"
level_every = 600
max_level = 5
speed_per_level = 0.25

[[entities]]
name = "apple"
kind = "collectible"
shape = "circle"
radius = { min = 8, max = 10 }
speed = { min = 2, max = 3 }
interval = { base = 40, per_speed = 5, floor = 20 }
reward = { points = 3, per_level = 1 }
on_exit = { action = "miss" }
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("catch", path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Title != "Catch TOML" || cfg.Session.MissLimit != 3 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Difficulty.Mode != ModeStepped || cfg.Difficulty.SpeedPerLevel != 0.25 {
		t.Errorf("unexpected difficulty: %+v", cfg.Difficulty)
	}
	if len(cfg.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(cfg.Entities))
	}
	e := cfg.Entities[0]
	if e.Radius.Max != 10 || e.Reward.Points != 3 || e.OnExit.Action != ExitMiss {
		t.Errorf("unexpected entity: %+v", e)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	tests := []struct {
		name, file, data string
	}{
		{"yaml", "fast.yaml", "player:\n  max_speed: 9\n"},
		{"toml", "fast.toml", "[player]\nmax_speed = 9\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			if err := os.WriteFile(path, []byte(tc.data), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load("dash", path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("partial config should stay valid: %v", err)
			}

			want := DefaultDashConfig()
			want.Player.MaxSpeed = 9
			if !reflect.DeepEqual(cfg, want) {
				t.Errorf("Load() = %+v\nexpected defaults with max_speed 9", cfg)
			}
		})
	}
}

func TestLoadReplacesEntityList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.toml")
	data := `
[[entities]]
name = "rock"
kind = "hazard"
shape = "rect"
width = { min = 10, max = 20 }
height = { min = 5, max = 5 }
speed = { min = 1, max = 2 }
interval = { base = 30, floor = 10 }
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("dash", path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.Entities) != 1 {
		t.Fatalf("expected the file's single class, got %d", len(cfg.Entities))
	}
	// Nothing of the first default class may leak into the new one
	if e := cfg.Entities[0]; e.Name != "rock" || e.Bonus != (BonusConfig{}) {
		t.Errorf("unexpected entity: %+v", e)
	}
	if cfg.Title != DefaultDashConfig().Title {
		t.Errorf("Title = %q, expected the default", cfg.Title)
	}
}

func TestLoadCustomMissingFile(t *testing.T) {
	_, err := Load("dodge", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
	if !strings.Contains(err.Error(), "failed to read config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadCustomBadSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("this is = = not toml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load("dodge", path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*VariantConfig)
		want   string
	}{
		{"empty playfield", func(c *VariantConfig) { c.Playfield.Width = 0 }, "playfield"},
		{"unknown control", func(c *VariantConfig) { c.Player.Control = "mouse" }, "control"},
		{"no lives", func(c *VariantConfig) { c.Session.Lives = 0 }, "lives"},
		{"unknown mode", func(c *VariantConfig) { c.Difficulty.Mode = "random" }, "mode"},
		{"no entities", func(c *VariantConfig) { c.Entities = nil }, "entity"},
		{"inverted range", func(c *VariantConfig) { c.Entities[0].Width = Range{Min: 100, Max: 50} }, "width"},
		{"floor above base", func(c *VariantConfig) { c.Entities[0].Interval.Floor = 100 }, "interval"},
		{"unknown kind", func(c *VariantConfig) { c.Entities[0].Kind = "boss" }, "kind"},
		{"too wide", func(c *VariantConfig) { c.Entities[0].Width.Max = 1000 }, "playfield"},
		{"long glyph", func(c *VariantConfig) { c.Entities[0].Glyph = "##" }, "glyph"},
		{"unknown color", func(c *VariantConfig) { c.Entities[0].Color = "purple" }, "color"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultDodgeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := map[string]DifficultyPreset{
		"easy":   DifficultyEasy,
		"normal": DifficultyNormal,
		"hard":   DifficultyHard,
		"fixed":  DifficultyFixed,
		"":       "",
		"insane": "",
	}
	for in, want := range tests {
		if got := ParsePreset(in); got != want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	t.Run("fixed disables progression", func(t *testing.T) {
		cfg := DefaultDodgeConfig()
		ApplyPreset(&cfg, DifficultyFixed)
		if cfg.Difficulty.Enabled {
			t.Error("fixed preset should disable difficulty")
		}
	})

	t.Run("hard raises initial level", func(t *testing.T) {
		cfg := DefaultDodgeConfig()
		ApplyPreset(&cfg, DifficultyHard)
		if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
			t.Errorf("unexpected difficulty: %+v", cfg.Difficulty)
		}
	})

	t.Run("empty preset is a no-op", func(t *testing.T) {
		cfg := DefaultDashConfig()
		ApplyPreset(&cfg, "")
		if !reflect.DeepEqual(cfg, DefaultDashConfig()) {
			t.Error("empty preset changed the config")
		}
	})

	t.Run("easy adds a life", func(t *testing.T) {
		cfg := DefaultDashConfig()
		ApplyPreset(&cfg, DifficultyEasy)
		if cfg.Session.Lives != 4 {
			t.Errorf("Lives = %d, expected 4", cfg.Session.Lives)
		}
	})

	t.Run("hard tightens miss limit", func(t *testing.T) {
		cfg := DefaultCatchConfig()
		ApplyPreset(&cfg, DifficultyHard)
		if cfg.Session.MissLimit != 3 {
			t.Errorf("MissLimit = %d, expected 3", cfg.Session.MissLimit)
		}
	})

	t.Run("single life stays single", func(t *testing.T) {
		cfg := DefaultDodgeConfig()
		ApplyPreset(&cfg, DifficultyHard)
		if cfg.Session.Lives != 1 {
			t.Errorf("Lives = %d, expected 1", cfg.Session.Lives)
		}
	})
}

func TestDifficultyContinuous(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:    true,
		Mode:       ModeContinuous,
		RampFrames: 1500,
		Cap:        2.5,
	})

	tests := []struct {
		elapsed float64
		speed   float64
		level   int
	}{
		{0, 1.0, 1},
		{750, 1.5, 1},
		{1500, 2.0, 2},
		{3000, 3.0, 3},
		{3750, 3.5, 3},
		{1e9, 3.5, 3},
		{-10, 1.0, 1},
	}

	for _, tc := range tests {
		if got := dm.Speed(tc.elapsed); math.Abs(got-tc.speed) > 1e-9 {
			t.Errorf("Speed(%v) = %v, expected %v", tc.elapsed, got, tc.speed)
		}
		if got := dm.Level(tc.elapsed); got != tc.level {
			t.Errorf("Level(%v) = %d, expected %d", tc.elapsed, got, tc.level)
		}
	}
}

func TestDifficultyStepped(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:       true,
		Mode:          ModeStepped,
		LevelEvery:    900,
		MaxLevel:      4,
		SpeedPerLevel: 0.2,
	})

	tests := []struct {
		elapsed float64
		level   int
		speed   float64
	}{
		{0, 1, 1.0},
		{899, 1, 1.0},
		{900, 2, 1.2},
		{2700, 4, 1.6},
		{1e9, 4, 1.6},
	}

	for _, tc := range tests {
		if got := dm.Level(tc.elapsed); got != tc.level {
			t.Errorf("Level(%v) = %d, expected %d", tc.elapsed, got, tc.level)
		}
		if got := dm.Speed(tc.elapsed); math.Abs(got-tc.speed) > 1e-9 {
			t.Errorf("Speed(%v) = %v, expected %v", tc.elapsed, got, tc.speed)
		}
	}
}

func TestDifficultyInitialLevel(t *testing.T) {
	cfg := DefaultDodgeConfig().Difficulty
	cfg.InitialLevel = 0.3
	dm := NewDifficultyManager(cfg)

	// 0.3 of the 2.5 cap is already reached at frame zero
	if got := dm.Speed(0); math.Abs(got-1.75) > 1e-9 {
		t.Errorf("Speed(0) = %v, expected 1.75", got)
	}

	cfg.Enabled = false
	dm = NewDifficultyManager(cfg)
	if got := dm.Speed(100000); math.Abs(got-1.75) > 1e-9 {
		t.Errorf("disabled Speed() = %v, expected frozen 1.75", got)
	}

	cfg.InitialLevel = 5
	dm = NewDifficultyManager(cfg)
	if got := dm.Speed(0); math.Abs(got-3.5) > 1e-9 {
		t.Errorf("clamped initial level Speed(0) = %v, expected 3.5", got)
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		cfg  VariantConfig
		want string
	}{
		{"dodge", DefaultDodgeConfig(), "one hit ends it"},
		{"dash", DefaultDashConfig(), "3 lives, dash, catch to score, power-ups"},
		{"catch", DefaultCatchConfig(), "5 misses allowed, catch to score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
