package engine

import (
	"github.com/vovakirdan/drop-arcade/internal/config"
	"github.com/vovakirdan/drop-arcade/internal/core"
)

// Kind classifies what touching an entity does.
type Kind int

const (
	KindHazard Kind = iota
	KindCollectible
	KindShield
	KindSlow
)

// String returns the config name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHazard:
		return config.KindHazard
	case KindCollectible:
		return config.KindCollectible
	case KindShield:
		return config.KindShield
	case KindSlow:
		return config.KindSlow
	default:
		return "unknown"
	}
}

// ParseKind maps a configured kind name to a Kind. Unknown names are hazards.
func ParseKind(s string) Kind {
	switch s {
	case config.KindCollectible:
		return KindCollectible
	case config.KindShield:
		return KindShield
	case config.KindSlow:
		return KindSlow
	default:
		return KindHazard
	}
}

// Shape is the collision geometry of an entity.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
)

// Entity is a falling object.
// Rect entities are positioned by their top-left corner, circles by center.
type Entity struct {
	Class string
	Kind  Kind
	Shape Shape
	X, Y  float64
	W, H  float64 // rect only
	R     float64 // circle only
	VY    float64

	class int // index into the session's entity classes
}

// Bounds returns the entity's bounding box.
func (e Entity) Bounds() core.Box {
	if e.Shape == ShapeCircle {
		return core.Circle{X: e.X, Y: e.Y, R: e.R}.Bounds()
	}
	return core.NewBox(e.X, e.Y, e.W, e.H)
}

// Leading returns the y-coordinate of the entity's bottom edge.
func (e Entity) Leading() float64 {
	if e.Shape == ShapeCircle {
		return e.Y + e.R
	}
	return e.Y + e.H
}

// spawnClass is the runtime state of one entity class.
type spawnClass struct {
	cfg      config.EntityConfig
	kind     Kind
	shape    Shape
	cooldown float64
}

// Spawner creates entities for every class on independent cooldowns.
type Spawner struct {
	classes []spawnClass
	width   float64
	src     Source
}

// NewSpawner creates a spawner for the given classes over a playfield width.
func NewSpawner(classes []config.EntityConfig, width float64, src Source) *Spawner {
	sp := &Spawner{
		classes: make([]spawnClass, len(classes)),
		width:   width,
		src:     src,
	}
	for i, c := range classes {
		shape := ShapeRect
		if c.Shape == config.ShapeCircle {
			shape = ShapeCircle
		}
		sp.classes[i] = spawnClass{cfg: c, kind: ParseKind(c.Kind), shape: shape}
	}
	return sp
}

// Reset zeroes every cooldown.
func (sp *Spawner) Reset() {
	for i := range sp.classes {
		sp.classes[i].cooldown = 0
	}
}

// Cooldowns returns a copy of the per-class cooldowns in frames.
func (sp *Spawner) Cooldowns() []float64 {
	out := make([]float64, len(sp.classes))
	for i, c := range sp.classes {
		out[i] = c.cooldown
	}
	return out
}

// Interval returns the spawn interval in frames at the given speed.
// It shrinks linearly with speed and never leaves [floor, base].
func Interval(ic config.IntervalConfig, speed float64) float64 {
	return core.ClampF(ic.Base-(speed-1)*ic.PerSpeed, ic.Floor, ic.Base)
}

// BonusChance returns the probability of an extra simultaneous spawn. The
// bonus only exists once speed is strictly above MinSpeed.
func BonusChance(bc config.BonusConfig, speed float64) float64 {
	if bc.Chance <= 0 && bc.ChancePerSpeed <= 0 {
		return 0
	}
	if speed <= bc.MinSpeed {
		return 0
	}
	return core.ClampF(bc.Chance+(speed-bc.MinSpeed)*bc.ChancePerSpeed, 0, 1)
}

// Update counts every eligible cooldown down by dt and appends spawned
// entities to dst. Classes gated by min_level are frozen below that level.
func (sp *Spawner) Update(dst []Entity, dt, speed float64, level int) []Entity {
	for i := range sp.classes {
		c := &sp.classes[i]
		if level < c.cfg.MinLevel {
			continue
		}

		c.cooldown -= dt
		if c.cooldown > 0 {
			continue
		}
		c.cooldown = Interval(c.cfg.Interval, speed)

		if c.cfg.Chance > 0 && sp.src.Float64() >= c.cfg.Chance {
			continue
		}
		dst = append(dst, sp.Spawn(i, speed))

		if p := BonusChance(c.cfg.Bonus, speed); p > 0 && sp.src.Float64() < p {
			dst = append(dst, sp.Spawn(i, speed))
		}
	}
	return dst
}

// Spawn creates one entity of class i just above the top edge.
func (sp *Spawner) Spawn(i int, speed float64) Entity {
	c := &sp.classes[i]
	e := Entity{
		Class: c.cfg.Name,
		Kind:  c.kind,
		Shape: c.shape,
		class: i,
	}

	switch c.shape {
	case ShapeCircle:
		e.R = uniform(sp.src, c.cfg.Radius)
		e.X = e.R + sp.src.Float64()*(sp.width-2*e.R)
		e.Y = -e.R
	default:
		e.W = uniform(sp.src, c.cfg.Width)
		e.H = uniform(sp.src, c.cfg.Height)
		e.X = sp.src.Float64() * (sp.width - e.W)
		e.Y = -e.H
	}
	e.VY = uniform(sp.src, c.cfg.Speed) * speed

	return e
}

func (sp *Spawner) class(i int) config.EntityConfig {
	return sp.classes[i].cfg
}
