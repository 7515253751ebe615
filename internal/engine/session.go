package engine

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/drop-arcade/internal/config"
)

// trickleSlack absorbs float error in frame multipliers so a run of
// nominal frames earns exactly one trickle point per frame.
const trickleSlack = 1e-6

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for best-score persistence problems.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets the random source used by the spawner.
func WithSource(src Source) Option {
	return func(s *Session) {
		if src != nil {
			s.src = src
		}
	}
}

// WithSeed seeds a fresh random source.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.src = NewSource(seed)
	}
}

// WithBestStore attaches persistence for the best score.
func WithBestStore(bs BestStore) Option {
	return func(s *Session) {
		s.store = bs
	}
}

// WithBest seeds the best score, for callers that rebuild a session and
// want to keep the best of the previous one.
func WithBest(best int) Option {
	return func(s *Session) {
		if best > s.best {
			s.best = best
		}
	}
}

// Session is one game instance: the player, live entities, score and the
// lifecycle state machine. It is driven by a single caller.
type Session struct {
	cfg     config.VariantConfig
	clock   *Clock
	spawner *Spawner
	diff    *config.DifficultyManager
	src     Source
	store   BestStore
	logger  *log.Logger

	phase    Phase
	player   Player
	entities []Entity

	score      int
	best       int
	lives      int
	misses     int
	level      int
	speed      float64
	elapsed    float64 // nominal frames since the run started
	frames     int     // simulated steps since the run started
	shield     int
	slowFrames float64
	trickle    float64
	nextBonus  int
	newBest    bool // the last finished run raised best

	events []Event
}

// NewSession builds a session for the variant. It starts Idle. The best
// score is read from the store once here; a failed read counts as zero.
func NewSession(cfg config.VariantConfig, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		s.src = NewSource(time.Now().UnixNano())
	}

	s.clock = NewClock(cfg.Clock)
	s.spawner = NewSpawner(cfg.Entities, cfg.Playfield.Width, s.src)
	s.diff = config.NewDifficultyManager(cfg.Difficulty)
	s.entities = make([]Entity, 0, 32)

	s.loadBest()
	s.reset()
	s.phase = PhaseIdle
	return s
}

// SetBestStore attaches a store after construction and seeds the best
// score from it. The best score never goes down.
func (s *Session) SetBestStore(bs BestStore) {
	s.store = bs
	s.loadBest()
}

func (s *Session) loadBest() {
	if s.store == nil {
		return
	}
	best, err := s.store.LoadBest(s.cfg.ID)
	if err != nil {
		s.logger.Warn("failed to load best score", "game", s.cfg.ID, "err", err)
		return
	}
	if best > s.best {
		s.best = best
	}
}

// reset restores every piece of run state to its initial value.
func (s *Session) reset() {
	s.clock.Reset()
	s.spawner.Reset()
	s.entities = s.entities[:0]
	s.player = newPlayer(s.cfg.Player, s.cfg.Playfield)

	s.score = 0
	s.lives = s.cfg.Session.Lives
	s.misses = 0
	s.elapsed = 0
	s.frames = 0
	s.speed = s.diff.Speed(0)
	s.level = s.diff.Level(0)
	s.shield = 0
	s.slowFrames = 0
	s.trickle = 0
	s.nextBonus = s.cfg.Session.ExtraLifeEvery
	s.newBest = false
	s.events = s.events[:0]
}

// Start begins a new run from Idle or GameOver. It is a no-op otherwise.
func (s *Session) Start() {
	if s.phase != PhaseIdle && s.phase != PhaseGameOver {
		return
	}
	s.reset()
	s.phase = PhaseRunning
}

// Pause freezes a running session.
func (s *Session) Pause() {
	if s.phase == PhaseRunning {
		s.phase = PhasePaused
	}
}

// Resume continues a paused session.
func (s *Session) Resume() {
	if s.phase == PhasePaused {
		s.phase = PhaseRunning
	}
}

// TogglePause pauses a running session or resumes a paused one.
func (s *Session) TogglePause() {
	switch s.phase {
	case PhaseRunning:
		s.Pause()
	case PhasePaused:
		s.Resume()
	}
}

// Restart begins a new run from any phase.
func (s *Session) Restart() {
	s.reset()
	s.phase = PhaseRunning
}

// Reset returns to Idle with fresh run state.
func (s *Session) Reset() {
	s.reset()
	s.phase = PhaseIdle
}

// Step advances the session by one frame. The clock always sees the
// timestamp; simulation only happens while Running.
func (s *Session) Step(ts float64, in Input) StepResult {
	dt := s.clock.Tick(ts)
	s.events = s.events[:0]

	if s.phase != PhaseRunning {
		return StepResult{Phase: s.phase, DT: dt}
	}

	s.frames++
	s.advanceDifficulty(dt)

	world := s.clock.Scale(dt, s.slowFrames > 0)

	s.entities = s.spawner.Update(s.entities, world, s.speed, s.level)
	if StepPlayer(&s.player, s.cfg.Player, in, dt, s.cfg.Playfield.Width) {
		s.emit(EventDash)
	}
	MoveEntities(s.entities, world)

	s.resolve()

	if s.phase == PhaseRunning {
		s.accrue(dt)
	}

	return StepResult{Phase: s.phase, DT: dt, Events: s.Events()}
}

func (s *Session) advanceDifficulty(dt float64) {
	s.elapsed += dt
	s.speed = s.diff.Speed(s.elapsed)

	level := s.diff.Level(s.elapsed)
	if level > s.level {
		s.emit(EventLevelUp)
	}
	s.level = level
}

// accrue handles the per-step session bookkeeping after collisions.
func (s *Session) accrue(dt float64) {
	if rate := s.cfg.Session.TricklePerFrame; rate > 0 {
		s.trickle += rate * dt
		whole := math.Floor(s.trickle + trickleSlack)
		s.trickle = math.Max(0, s.trickle-whole)
		s.addScore(int(whole))
	}

	s.slowFrames = math.Max(0, s.slowFrames-dt)

	every := s.cfg.Session.ExtraLifeEvery
	for every > 0 && s.score >= s.nextBonus {
		s.nextBonus += every
		s.extraLife()
	}
}

func (s *Session) extraLife() {
	if s.cfg.Session.MissMode() {
		if s.misses > 0 {
			s.misses--
			s.emit(EventExtraLife)
		}
		return
	}
	maxLives := s.cfg.Session.MaxLives
	if maxLives <= 0 || s.lives < maxLives {
		s.lives++
		s.emit(EventExtraLife)
	}
}

func (s *Session) addScore(points int) {
	if points <= 0 {
		return
	}
	s.score += points
}

// gameOver ends the run and persists a new best score.
func (s *Session) gameOver() {
	s.phase = PhaseGameOver
	s.emit(EventGameOver)
	s.logger.Debug("game over", "game", s.cfg.ID, "score", s.score, "frames", s.frames)

	if s.score <= s.best {
		return
	}
	s.best = s.score
	s.newBest = true
	s.emit(EventNewBest)

	if s.store == nil {
		return
	}
	if err := s.store.SaveBest(s.cfg.ID, s.best); err != nil {
		s.logger.Warn("failed to save best score", "game", s.cfg.ID, "score", s.best, "err", err)
	}
}

func (s *Session) emit(ev Event) {
	s.events = append(s.events, ev)
}

// Events returns a copy of the events from the last step.
func (s *Session) Events() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Config returns the variant configuration.
func (s *Session) Config() config.VariantConfig { return s.cfg }

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the current run's score.
func (s *Session) Score() int { return s.score }

// Best returns the best completed-run score.
func (s *Session) Best() int { return s.best }

// NewBest reports whether the finished run set a new best score. A run
// that only ties the best does not.
func (s *Session) NewBest() bool { return s.newBest }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Misses returns the misses so far.
func (s *Session) Misses() int { return s.misses }

// Level returns the difficulty level.
func (s *Session) Level() int { return s.level }

// Speed returns the difficulty speed multiplier.
func (s *Session) Speed() float64 { return s.speed }

// Elapsed returns nominal frames since the run started.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Frames returns the number of simulated steps in this run.
func (s *Session) Frames() int { return s.frames }

// Shield returns the shield charges.
func (s *Session) Shield() int { return s.shield }

// SlowFrames returns the frames of slow motion left.
func (s *Session) SlowFrames() float64 { return s.slowFrames }

// Player returns a copy of the player.
func (s *Session) Player() Player { return s.player }

// Entities returns a copy of the live entities.
func (s *Session) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Cooldowns returns the per-class spawn cooldowns.
func (s *Session) Cooldowns() []float64 {
	return s.spawner.Cooldowns()
}
