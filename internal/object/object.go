// Package object provides the drawable sprites of the game.
package object

import (
	"time"

	"github.com/tomz197/balloons/internal/draw"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas  // Cell canvas in play-area percent coordinates
	Now    time.Duration // Session clock, for animations
}

// Object is a drawable game entity.
type Object interface {
	// Draw draws the object onto ctx.Canvas.
	Draw(ctx DrawContext) error
}
