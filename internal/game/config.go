package game

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Config.Validate for unusable tunables.
var ErrInvalidConfig = errors.New("invalid game config")

// Palette is the fixed set of balloon colors.
var Palette = []string{
	"#ef4444", // red
	"#3b82f6", // blue
	"#10b981", // green
	"#f59e0b", // amber
	"#8b5cf6", // purple
	"#ec4899", // pink
	"#14b8a6", // teal
}

// Messages are the encouraging phrases shown after a pop.
var Messages = []string{"Amazing!", "Great Job!", "Awesome!", "Fantastic!", "Super!", "Wonderful!", "You Rock!"}

// Config holds every tunable of a session.
// Coordinates are percentages of the play area, Y measured from the top.
type Config struct {
	SpawnInterval    time.Duration `yaml:"spawnInterval"`
	MotionInterval   time.Duration `yaml:"motionInterval"`
	MessageDuration  time.Duration `yaml:"messageDuration"`
	ParticleDuration time.Duration `yaml:"particleDuration"`
	ParticleCount    int           `yaml:"particleCount"`

	SpawnY   float64 `yaml:"spawnY"`  // Start position, below the visible area
	RemoveY  float64 `yaml:"removeY"` // Balloons at or above this line are dropped
	MinX     float64 `yaml:"minX"`
	MaxX     float64 `yaml:"maxX"`
	MinSpeed float64 `yaml:"minSpeed"` // Per motion tick
	MaxSpeed float64 `yaml:"maxSpeed"`

	// Hit box of a balloon around its (X, Y) center
	BalloonRadiusX float64 `yaml:"balloonRadiusX"`
	BalloonRadiusY float64 `yaml:"balloonRadiusY"`

	Palette  []string `yaml:"palette"`
	Messages []string `yaml:"messages"`
}

// DefaultConfig returns the standard game tuning.
func DefaultConfig() Config {
	return Config{
		SpawnInterval:    1200 * time.Millisecond,
		MotionInterval:   50 * time.Millisecond,
		MessageDuration:  1000 * time.Millisecond,
		ParticleDuration: 600 * time.Millisecond,
		ParticleCount:    12,
		SpawnY:           110,
		RemoveY:          -20,
		MinX:             5,
		MaxX:             90,
		MinSpeed:         1.5,
		MaxSpeed:         3.0,
		BalloonRadiusX:   4,
		BalloonRadiusY:   6,
		Palette:          append([]string(nil), Palette...),
		Messages:         append([]string(nil), Messages...),
	}
}

// Validate checks that the config can drive a session.
func (c Config) Validate() error {
	switch {
	case c.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawnInterval must be positive, got %v", ErrInvalidConfig, c.SpawnInterval)
	case c.MotionInterval <= 0:
		return fmt.Errorf("%w: motionInterval must be positive, got %v", ErrInvalidConfig, c.MotionInterval)
	case c.MessageDuration <= 0:
		return fmt.Errorf("%w: messageDuration must be positive, got %v", ErrInvalidConfig, c.MessageDuration)
	case c.ParticleDuration <= 0:
		return fmt.Errorf("%w: particleDuration must be positive, got %v", ErrInvalidConfig, c.ParticleDuration)
	case c.ParticleCount < 0:
		return fmt.Errorf("%w: particleCount must not be negative, got %d", ErrInvalidConfig, c.ParticleCount)
	case c.RemoveY >= c.SpawnY:
		return fmt.Errorf("%w: removeY (%v) must be below spawnY (%v)", ErrInvalidConfig, c.RemoveY, c.SpawnY)
	case c.MinX < 0 || c.MaxX > 100:
		return fmt.Errorf("%w: minX/maxX must lie within [0, 100], got [%v, %v]", ErrInvalidConfig, c.MinX, c.MaxX)
	case c.MinX > c.MaxX:
		return fmt.Errorf("%w: minX (%v) exceeds maxX (%v)", ErrInvalidConfig, c.MinX, c.MaxX)
	case c.MinSpeed <= 0:
		// Balloons must rise on every tick
		return fmt.Errorf("%w: minSpeed must be positive, got %v", ErrInvalidConfig, c.MinSpeed)
	case c.MinSpeed > c.MaxSpeed:
		return fmt.Errorf("%w: minSpeed (%v) exceeds maxSpeed (%v)", ErrInvalidConfig, c.MinSpeed, c.MaxSpeed)
	case c.BalloonRadiusX <= 0 || c.BalloonRadiusY <= 0:
		return fmt.Errorf("%w: balloon radii must be positive, got %v x %v", ErrInvalidConfig, c.BalloonRadiusX, c.BalloonRadiusY)
	case len(c.Palette) == 0:
		return fmt.Errorf("%w: palette is empty", ErrInvalidConfig)
	case len(c.Messages) == 0:
		return fmt.Errorf("%w: messages is empty", ErrInvalidConfig)
	}
	return nil
}
