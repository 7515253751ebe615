package engine

import (
	"github.com/vovakirdan/drop-arcade/internal/config"
	"github.com/vovakirdan/drop-arcade/internal/core"
)

// RectsOverlap reports whether two boxes overlap. Touching edges do not.
func RectsOverlap(a, b core.Box) bool {
	return a.Intersects(b)
}

// CircleOverlapsRect reports whether a circle overlaps a box, using the
// squared distance from the center to the closest point of the box.
func CircleOverlapsRect(c core.Circle, b core.Box) bool {
	return c.IntersectsBox(b)
}

// Overlaps tests an entity against the player box using its own geometry.
func Overlaps(e Entity, player core.Box) bool {
	if e.Shape == ShapeCircle {
		return CircleOverlapsRect(core.Circle{X: e.X, Y: e.Y, R: e.R}, player)
	}
	return RectsOverlap(e.Bounds(), player)
}

// resolve removes exited and touched entities and applies their outcomes.
// Entities are walked from the end so removal never skips one. An entity
// past the exit line is only ever an exit, never a collision. Processing
// stops as soon as the run ends.
func (s *Session) resolve() {
	box := s.player.Box()
	exitLine := s.cfg.Playfield.Height + s.cfg.Playfield.ExitMargin

	for i := len(s.entities) - 1; i >= 0; i-- {
		if s.phase != PhaseRunning {
			return
		}
		e := s.entities[i]

		if e.Leading() > exitLine {
			s.removeEntity(i)
			s.exited(e)
			continue
		}
		if Overlaps(e, box) {
			s.removeEntity(i)
			s.touched(e)
		}
	}
}

func (s *Session) removeEntity(i int) {
	s.entities = append(s.entities[:i], s.entities[i+1:]...)
}

// touched applies the outcome of the player touching an entity.
func (s *Session) touched(e Entity) {
	switch e.Kind {
	case KindHazard:
		switch {
		case s.player.Invulnerable > 0:
			s.emit(EventBlocked)
		case s.shield > 0:
			s.shield--
			s.emit(EventShieldBreak)
		default:
			s.emit(EventHit)
			if !s.penalize() {
				s.player.Invulnerable = s.cfg.Player.InvulnerableFrames
			}
		}
	case KindCollectible:
		r := s.spawner.class(e.class).Reward
		s.addScore(r.Points + r.PerLevel*(s.level-1))
		s.emit(EventCollect)
	case KindShield:
		s.shield = 1
		s.emit(EventShield)
	case KindSlow:
		s.slowFrames = s.cfg.Session.SlowFrames
		s.emit(EventSlow)
	}
}

// exited applies the class's outcome for an entity leaving the bottom.
func (s *Session) exited(e Entity) {
	out := s.spawner.class(e.class).OnExit
	switch out.Action {
	case config.ExitScore:
		s.addScore(out.Points)
		s.emit(EventExitScore)
	case config.ExitMiss:
		s.emit(EventMiss)
		s.penalize()
	}
}

// penalize takes a life or adds a miss and ends the run when the limit is
// reached. It returns true if the run ended.
func (s *Session) penalize() bool {
	if s.cfg.Session.MissMode() {
		s.misses++
		if s.misses >= s.cfg.Session.MissLimit {
			s.gameOver()
			return true
		}
		return false
	}

	if s.lives > 0 {
		s.lives--
	}
	if s.lives == 0 {
		s.gameOver()
		return true
	}
	return false
}
