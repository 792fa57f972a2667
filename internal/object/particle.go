package object

import (
	"math"
	"time"

	"github.com/tomz197/balloons/internal/game"
	"github.com/tomz197/balloons/internal/physics"
)

// burstSpread is how far, in play-area percent, a particle travels over its lifetime.
const burstSpread = 10.0

// fadeSymbols are drawn as a particle ages, from fresh to nearly gone.
var fadeSymbols = []rune{'●', '•', '∙', '·'}

// ParticleSprite draws one fragment of a pop burst flying outwards.
type ParticleSprite struct {
	Particle  game.Particle
	BurstSize int           // Particles per burst, spreads Index around a circle
	Lifetime  time.Duration // Time until the session removes the particle
}

// NewParticleSprite creates a sprite for p using the session's burst settings.
func NewParticleSprite(p game.Particle, cfg game.Config) ParticleSprite {
	return ParticleSprite{Particle: p, BurstSize: cfg.ParticleCount, Lifetime: cfg.ParticleDuration}
}

// Progress returns how far through its lifetime the particle is, in [0, 1].
func (s ParticleSprite) Progress(now time.Duration) float64 {
	if s.Lifetime <= 0 {
		return 1
	}
	p := float64(now-s.Particle.Born) / float64(s.Lifetime)
	return physics.Clamp(p, 0, 1)
}

// Position returns where the particle is drawn at time now.
func (s ParticleSprite) Position(now time.Duration) (x, y float64) {
	n := s.BurstSize
	if n <= 0 {
		n = 1
	}
	angle := 2 * math.Pi * float64(s.Particle.Index) / float64(n)
	// Ease out: fast at first, slowing down
	t := s.Progress(now)
	dist := burstSpread * (1 - (1-t)*(1-t))
	return s.Particle.X + math.Cos(angle)*dist, s.Particle.Y + math.Sin(angle)*dist
}

// Draw renders the particle. Fully faded particles are skipped even if the
// session has not removed them yet.
func (s ParticleSprite) Draw(ctx DrawContext) error {
	t := s.Progress(ctx.Now)
	if t >= 1 {
		return nil
	}
	x, y := s.Position(ctx.Now)
	symbol := fadeSymbols[int(t*float64(len(fadeSymbols)))]
	ctx.Canvas.Set(x, y, symbol, s.Particle.Color)
	return nil
}
