package engine

import (
	"testing"

	"github.com/vovakirdan/drop-arcade/internal/config"
)

// constSource always returns the same value.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

// seqSource replays values in order, repeating the last one.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i]
	if s.i < len(s.vals)-1 {
		s.i++
	}
	return v
}

func blockClass() config.EntityConfig {
	return config.DefaultDodgeConfig().Entities[0]
}

func TestInterval(t *testing.T) {
	ic := config.IntervalConfig{Base: 54, PerSpeed: 10.8, Floor: 15}

	tests := []struct {
		speed float64
		want  float64
	}{
		{1.0, 54},
		{2.0, 43.2},
		{3.5, 27},
		{10, 15},
		{0.5, 54}, // never above base
	}
	for _, tc := range tests {
		if got := Interval(ic, tc.speed); !approx(got, tc.want) {
			t.Errorf("Interval(speed=%v) = %v, expected %v", tc.speed, got, tc.want)
		}
	}
}

func TestIntervalStaysAtFloorPastCap(t *testing.T) {
	ic := config.IntervalConfig{Base: 54, PerSpeed: 20, Floor: 15}
	dm := config.NewDifficultyManager(config.DifficultyConfig{
		Enabled:    true,
		Mode:       config.ModeContinuous,
		RampFrames: 1500,
		Cap:        2.5,
	})

	atCap := Interval(ic, dm.Speed(3750))
	if atCap != ic.Floor {
		t.Fatalf("interval at cap = %v, expected floor %v", atCap, ic.Floor)
	}
	for _, elapsed := range []float64{4000, 10000, 1e7} {
		if got := Interval(ic, dm.Speed(elapsed)); got != atCap {
			t.Errorf("interval at elapsed %v = %v, expected %v", elapsed, got, atCap)
		}
	}
}

func TestBonusChance(t *testing.T) {
	tests := []struct {
		name  string
		bc    config.BonusConfig
		speed float64
		want  float64
	}{
		{"disabled", config.BonusConfig{}, 3, 0},
		{"below threshold", config.BonusConfig{MinSpeed: 2.2, Chance: 0.35}, 2.0, 0},
		{"at threshold", config.BonusConfig{MinSpeed: 2.2, Chance: 0.35}, 2.2, 0},
		{"above threshold", config.BonusConfig{MinSpeed: 2.2, Chance: 0.35}, 2.21, 0.35},
		{"grows with speed", config.BonusConfig{MinSpeed: 1, Chance: 0.2, ChancePerSpeed: 0.1}, 3, 0.4},
		{"clamped to one", config.BonusConfig{MinSpeed: 1, Chance: 0.9, ChancePerSpeed: 1}, 5, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BonusChance(tc.bc, tc.speed); !approx(got, tc.want) {
				t.Errorf("BonusChance() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestSpawnRect(t *testing.T) {
	sp := NewSpawner([]config.EntityConfig{blockClass()}, 480, constSource(0.5))

	e := sp.Spawn(0, 2)
	if e.Kind != KindHazard || e.Shape != ShapeRect || e.Class != "block" {
		t.Fatalf("unexpected entity: %+v", e)
	}
	if !approx(e.W, 110) || !approx(e.H, 17) {
		t.Errorf("size = %vx%v, expected 110x17", e.W, e.H)
	}
	if !approx(e.X, 185) {
		t.Errorf("X = %v, expected 185", e.X)
	}
	if e.Y != -e.H {
		t.Errorf("Y = %v, expected just above the top (%v)", e.Y, -e.H)
	}
	if !approx(e.VY, 5.2) {
		t.Errorf("VY = %v, expected 2.6 * speed 2 = 5.2", e.VY)
	}
}

func TestSpawnCircle(t *testing.T) {
	meteor := config.DefaultDashConfig().Entities[0]
	sp := NewSpawner([]config.EntityConfig{meteor}, 480, constSource(0.5))

	e := sp.Spawn(0, 1)
	if e.Shape != ShapeCircle {
		t.Fatalf("expected circle, got %v", e.Shape)
	}
	if !approx(e.R, 16) || !approx(e.X, 240) || !approx(e.Y, -16) {
		t.Errorf("circle = (%v, %v) r=%v, expected (240, -16) r=16", e.X, e.Y, e.R)
	}
}

func TestSpawnStaysInsidePlayfield(t *testing.T) {
	classes := []config.EntityConfig{blockClass(), config.DefaultDashConfig().Entities[0]}
	for _, v := range []float64{0, 0.999999} {
		sp := NewSpawner(classes, 480, constSource(v))
		for i := range classes {
			b := sp.Spawn(i, 1).Bounds()
			if b.X < 0 || b.Right() > 480 {
				t.Errorf("class %d with source %v spawned outside: %+v", i, v, b)
			}
			if b.Bottom() > 0 {
				t.Errorf("class %d spawned below the top edge: %+v", i, b)
			}
		}
	}
}

func TestSpawnerCooldown(t *testing.T) {
	sp := NewSpawner([]config.EntityConfig{blockClass()}, 480, constSource(0.5))

	out := sp.Update(nil, 1, 1, 1)
	if len(out) != 1 {
		t.Fatalf("first update spawned %d entities, expected 1", len(out))
	}
	if got := sp.Cooldowns()[0]; got != 54 {
		t.Errorf("cooldown after spawn = %v, expected 54", got)
	}

	out = sp.Update(out, 1, 1, 1)
	if len(out) != 1 {
		t.Errorf("second update spawned again: %d entities", len(out))
	}
	if got := sp.Cooldowns()[0]; got != 53 {
		t.Errorf("cooldown = %v, expected 53", got)
	}

	sp.Reset()
	if got := sp.Cooldowns()[0]; got != 0 {
		t.Errorf("cooldown after Reset = %v, expected 0", got)
	}
}

func TestSpawnerBonus(t *testing.T) {
	sp := NewSpawner([]config.EntityConfig{blockClass()}, 480, constSource(0.1))

	if out := sp.Update(nil, 1, 3, 3); len(out) != 2 {
		t.Errorf("expected a bonus spawn at speed 3, got %d entities", len(out))
	}

	sp.Reset()
	if out := sp.Update(nil, 1, 1.5, 1); len(out) != 1 {
		t.Errorf("expected no bonus below min speed, got %d entities", len(out))
	}
}

func TestSpawnerMinLevel(t *testing.T) {
	shield := config.DefaultDashConfig().Entities[2]
	shield.Chance = 0
	sp := NewSpawner([]config.EntityConfig{shield}, 480, constSource(0.5))

	if out := sp.Update(nil, 5, 1, shield.MinLevel-1); len(out) != 0 {
		t.Errorf("class spawned below its min level")
	}
	if got := sp.Cooldowns()[0]; got != 0 {
		t.Errorf("gated cooldown moved to %v", got)
	}
	if out := sp.Update(nil, 1, 1, shield.MinLevel); len(out) != 1 {
		t.Errorf("class did not spawn at its min level")
	}
}

func TestSpawnerChance(t *testing.T) {
	block := blockClass()
	block.Chance = 0.5
	sp := NewSpawner([]config.EntityConfig{block}, 480, constSource(0.9))

	if out := sp.Update(nil, 1, 1, 1); len(out) != 0 {
		t.Errorf("spawn should have been skipped by chance roll")
	}
	if got := sp.Cooldowns()[0]; got != 54 {
		t.Errorf("skipped spawn should still reset cooldown, got %v", got)
	}
}

func TestSpawnerSequence(t *testing.T) {
	src := &seqSource{vals: []float64{0, 1, 0, 0.5}}
	sp := NewSpawner([]config.EntityConfig{blockClass()}, 480, src)

	e := sp.Spawn(0, 1)
	// width draw 0 -> 60, height draw 1 -> 20, x draw 0, speed draw 0.5
	if e.W != 60 || e.H != 20 || e.X != 0 || !approx(e.VY, 2.6) {
		t.Errorf("unexpected entity: %+v", e)
	}
}
