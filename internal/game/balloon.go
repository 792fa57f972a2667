package game

import "time"

// Balloon is a target rising through the play area.
type Balloon struct {
	ID    uint64
	X     float64 // Percent of play-area width, fixed at spawn
	Y     float64 // Percent of play-area height from the top, only ever decreases
	Color string
	Speed float64 // Y decrement per motion tick
}

// Particle is one fragment of a pop burst. Particles never change after creation.
type Particle struct {
	ID    uint64
	Index int // Slot within its burst, used by renderers to fan the burst out
	X     float64
	Y     float64
	Color string
	Born  time.Duration // Scheduler time of the pop
}
