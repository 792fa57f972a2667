// Package game implements the balloon pop session: spawning, rising, popping
// and scoring. It knows nothing about terminals; a renderer reads the
// session's state and turns player clicks into Pop calls.
package game

import (
	"slices"
	"time"

	"github.com/tomz197/balloons/internal/physics"
	"github.com/tomz197/balloons/internal/timer"
)

// Scheduler is the clock a session runs on. *timer.Scheduler satisfies it.
type Scheduler interface {
	Now() time.Duration
	Every(period time.Duration, fn func()) *timer.Task
	After(delay time.Duration, fn func()) *timer.Task
}

// Session holds the whole state of one play-through and is the only place it
// changes. A Session is not safe for concurrent use: drive it and its
// scheduler from a single goroutine.
type Session struct {
	cfg   Config
	sched Scheduler
	rng   Rand

	balloons  []Balloon
	particles []Particle
	score     int
	highScore int
	running   bool

	message    string
	messageSeq uint64 // Identifies the message instance a clear timer belongs to

	nextBalloonID  uint64
	nextParticleID uint64

	spawnTask  *timer.Task
	motionTask *timer.Task
	deferred   map[*timer.Task]struct{} // Pending message clears and particle cleanups
}

// NewSession creates an idle session. cfg is expected to pass Validate.
func NewSession(cfg Config, sched Scheduler, rng Rand) *Session {
	return &Session{
		cfg:      cfg,
		sched:    sched,
		rng:      rng,
		deferred: make(map[*timer.Task]struct{}),
	}
}

// Start begins a new play-through. The high score is kept; everything else is
// reset. Starting a running session restarts it.
func (s *Session) Start() {
	s.reset()
	s.running = true
	s.spawnTask = s.sched.Every(s.cfg.SpawnInterval, s.SpawnTick)
	s.motionTask = s.sched.Every(s.cfg.MotionInterval, s.MotionTick)
}

// Stop ends the play-through and returns to idle. The high score is kept.
func (s *Session) Stop() {
	s.reset()
}

// reset cancels every timer the session owns and clears per-play state.
func (s *Session) reset() {
	s.spawnTask.Cancel()
	s.motionTask.Cancel()
	s.spawnTask = nil
	s.motionTask = nil
	for task := range s.deferred {
		task.Cancel()
	}
	clear(s.deferred)

	s.running = false
	s.score = 0
	s.balloons = nil
	s.particles = nil
	s.message = ""
	s.messageSeq++
}

// SpawnTick adds one balloon just below the play area.
func (s *Session) SpawnTick() {
	if !s.running {
		return
	}
	s.nextBalloonID++
	s.balloons = append(s.balloons, Balloon{
		ID:    s.nextBalloonID,
		X:     between(s.rng, s.cfg.MinX, s.cfg.MaxX),
		Y:     s.cfg.SpawnY,
		Color: s.cfg.Palette[s.rng.IntN(len(s.cfg.Palette))],
		Speed: between(s.rng, s.cfg.MinSpeed, s.cfg.MaxSpeed),
	})
}

// MotionTick raises every balloon by its speed, then drops the ones that left
// the top of the play area.
func (s *Session) MotionTick() {
	if !s.running {
		return
	}
	for i := range s.balloons {
		s.balloons[i].Y -= s.balloons[i].Speed
	}

	kept := s.balloons[:0]
	for _, b := range s.balloons {
		if b.Y > s.cfg.RemoveY {
			kept = append(kept, b)
		}
	}
	clear(s.balloons[len(kept):])
	s.balloons = kept
}

// Pop removes the balloon with the given ID, scores it, shows a message and
// bursts it into particles. Popping a balloon that no longer exists does
// nothing and returns false.
func (s *Session) Pop(id uint64) bool {
	idx := slices.IndexFunc(s.balloons, func(b Balloon) bool { return b.ID == id })
	if idx < 0 {
		return false
	}
	popped := s.balloons[idx]
	s.balloons = slices.Delete(s.balloons, idx, idx+1)

	s.score++
	if s.score > s.highScore {
		s.highScore = s.score
	}

	s.showMessage(s.cfg.Messages[s.rng.IntN(len(s.cfg.Messages))])
	s.burst(popped)
	return true
}

// showMessage displays msg until MessageDuration passes or a newer message
// replaces it.
func (s *Session) showMessage(msg string) {
	s.messageSeq++
	seq := s.messageSeq
	s.message = msg

	s.later(s.cfg.MessageDuration, func() {
		if s.messageSeq == seq {
			s.message = ""
		}
	})
}

// burst spawns the particles of a popped balloon and schedules their removal.
func (s *Session) burst(b Balloon) {
	now := s.sched.Now()
	ids := make(map[uint64]struct{}, s.cfg.ParticleCount)
	for i := 0; i < s.cfg.ParticleCount; i++ {
		s.nextParticleID++
		ids[s.nextParticleID] = struct{}{}
		s.particles = append(s.particles, Particle{
			ID:    s.nextParticleID,
			Index: i,
			X:     b.X,
			Y:     b.Y,
			Color: b.Color,
			Born:  now,
		})
	}

	s.later(s.cfg.ParticleDuration, func() {
		s.particles = slices.DeleteFunc(s.particles, func(p Particle) bool {
			_, ok := ids[p.ID]
			return ok
		})
	})
}

// later schedules a one-shot action that is cancelled if the session resets
// before it fires.
func (s *Session) later(delay time.Duration, fn func()) {
	var task *timer.Task
	task = s.sched.After(delay, func() {
		delete(s.deferred, task)
		fn()
	})
	s.deferred[task] = struct{}{}
}

// BalloonAt returns the topmost balloon whose hit box contains (x, y).
// Later spawns are drawn over earlier ones, so they win.
func (s *Session) BalloonAt(x, y float64) (uint64, bool) {
	for i := len(s.balloons) - 1; i >= 0; i-- {
		b := s.balloons[i]
		if physics.PointInEllipse(x, y, b.X, b.Y, s.cfg.BalloonRadiusX, s.cfg.BalloonRadiusY) {
			return b.ID, true
		}
	}
	return 0, false
}

// Balloons returns a copy of the live balloons in spawn order.
func (s *Session) Balloons() []Balloon {
	return slices.Clone(s.balloons)
}

// Particles returns a copy of the live particles.
func (s *Session) Particles() []Particle {
	return slices.Clone(s.particles)
}

// Score returns the score of the current play-through.
func (s *Session) Score() int {
	return s.score
}

// HighScore returns the best score reached by this session.
func (s *Session) HighScore() int {
	return s.highScore
}

// Running reports whether balloons are currently spawning and rising.
func (s *Session) Running() bool {
	return s.running
}

// Message returns the current encouragement, or "" when none is shown.
func (s *Session) Message() string {
	return s.message
}

// Now returns the session clock.
func (s *Session) Now() time.Duration {
	return s.sched.Now()
}

// Config returns the tuning the session runs with.
func (s *Session) Config() Config {
	return s.cfg
}
