// Package game implements Bear Run, an endless runner where a bear jumps
// over logs while the world scrolls and day slowly turns into night.
//
// The simulation is deterministic per tick given its random source. It never
// renders or plays audio itself: rendering reads a Snapshot and audio is fed
// through the injected Sound.
package game

import (
	"github.com/vovakirdan/bear-run/internal/config"
)

// Phase is the session state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseDead
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Transition reports what an input did.
type Transition int

const (
	TransitionIgnored Transition = iota // Invalid in the current state, e.g. jump while airborne
	TransitionStarted                   // Idle -> Running, with a jump
	TransitionJumped                    // Jump while running
	TransitionRestarted                 // Dead -> Running with a fresh world
)

// Session is one game of Bear Run: the runner, the obstacles and the score.
// It is not safe for concurrent use; the tick and input handlers must run
// on one goroutine.
type Session struct {
	cfg        config.BearConfig
	difficulty *config.DifficultyManager
	runner     Runner
	obstacles  *ObstacleManager
	night      NightCycle

	score int
	best  int
	speed float64
	tick  uint64
	phase Phase

	sound     Sound
	listeners []Listener
}

// Option configures a Session.
type Option func(*Session)

// WithSound sets the audio output. The default discards cues.
func WithSound(s Sound) Option {
	return func(sess *Session) {
		if s != nil {
			sess.sound = s
		}
	}
}

// WithRand sets the random source for spawn and variant decisions.
func WithRand(r Rand) Option {
	return func(sess *Session) {
		if r != nil {
			sess.obstacles.rng = r
		}
	}
}

// WithSeed seeds the default random source.
func WithSeed(seed int64) Option {
	return WithRand(NewRand(seed))
}

// WithListener adds an event observer.
func WithListener(l Listener) Option {
	return func(sess *Session) {
		if l != nil {
			sess.listeners = append(sess.listeners, l)
		}
	}
}

// NewSession creates an idle session.
func NewSession(cfg config.BearConfig, opts ...Option) *Session {
	s := &Session{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty, cfg.Obstacles),
		night:      NewNightCycle(cfg.Night.Threshold, cfg.Night.Step),
		sound:      NopSound{},
	}
	s.obstacles = NewObstacleManager(NewRand(1), &s.cfg, s.difficulty)
	for _, opt := range opts {
		opt(s)
	}
	s.reset()
	s.phase = PhaseIdle
	return s
}

// reset clears the world for a new run. Best score survives.
func (s *Session) reset() {
	s.runner = newRunner(s.cfg)
	s.obstacles.Reset()
	s.night.Reset()
	s.score = 0
	s.tick = 0
	s.speed = s.difficulty.Speed(0)
}

// Start begins a run from Idle and jumps in the same action.
// In any other phase it is ignored.
func (s *Session) Start() Transition {
	s.sound.Unlock()
	if s.phase != PhaseIdle {
		return TransitionIgnored
	}
	s.phase = PhaseRunning
	s.jump()
	return TransitionStarted
}

// Press is the single input entry point: it starts from Idle, jumps while
// Running and restarts when Dead.
func (s *Session) Press() Transition {
	s.sound.Unlock()
	switch s.phase {
	case PhaseIdle:
		return s.Start()
	case PhaseRunning:
		if s.jump() {
			return TransitionJumped
		}
		return TransitionIgnored
	case PhaseDead:
		s.reset()
		s.phase = PhaseRunning
		return TransitionRestarted
	}
	return TransitionIgnored
}

// jump applies the jump impulse if grounded.
func (s *Session) jump() bool {
	if !s.runner.jump(s.cfg.Physics.JumpVelocity) {
		return false
	}
	s.emit(EventJumped)
	return true
}

// Tick advances the simulation by one fixed step. It does nothing unless
// the session is running and reports whether a step was taken.
func (s *Session) Tick() bool {
	if s.phase != PhaseRunning {
		return false
	}
	s.tick++

	s.speed = s.difficulty.Speed(s.score)

	if s.night.Update(s.score) {
		s.emit(EventNightBegan)
	}

	s.runner.integrate(s.cfg.Physics, s.cfg.Field.GroundY, s.speed)

	s.obstacles.Generate(s.speed, s.score)

	// Passes are scored before pruning so nothing leaves the field uncounted
	s.obstacles.Advance(s.speed, s.runner.X, s.pass)
	s.obstacles.Prune()

	if _, hit := s.obstacles.FirstCollision(s.runner.Hitbox(s.cfg.Runner)); hit {
		s.phase = PhaseDead
		s.emit(EventCrashed)
	}
	return true
}

// pass credits one cleared obstacle.
func (s *Session) pass(Obstacle) {
	s.score++
	if s.score > s.best {
		s.best = s.score
	}
	s.emit(EventScored)
}

// emit sends an event to the sound output and all listeners.
func (s *Session) emit(kind EventKind) {
	e := Event{Kind: kind, Tick: s.tick, Score: s.score}
	s.sound.Play(e)
	for _, l := range s.listeners {
		l(e)
	}
}

// Running reports whether ticks currently advance the world.
func (s *Session) Running() bool {
	return s.phase == PhaseRunning
}

// Phase returns the current session state.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the current run's score.
func (s *Session) Score() int {
	return s.score
}

// Best returns the best score since the session was created.
func (s *Session) Best() int {
	return s.best
}

// Speed returns the world scroll speed used by the last tick.
func (s *Session) Speed() float64 {
	return s.speed
}

// TickCount returns the number of ticks in the current run.
func (s *Session) TickCount() uint64 {
	return s.tick
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.BearConfig {
	return s.cfg
}
