package object

import (
	"github.com/tomz197/balloons/internal/draw"
	"github.com/tomz197/balloons/internal/game"
)

// Balloon shape, in play-area percent.
const (
	shineOffset  = 0.45 // Fraction of the radii from center to the highlight
	stringLength = 7.0
	shineColor   = "#f8fafc"
)

// BalloonSprite draws a balloon: body, highlight and string.
type BalloonSprite struct {
	Balloon game.Balloon
	RadiusX float64
	RadiusY float64
}

// NewBalloonSprite creates a sprite sized to the session's hit box, so what the
// player sees is what they can click.
func NewBalloonSprite(b game.Balloon, cfg game.Config) BalloonSprite {
	return BalloonSprite{Balloon: b, RadiusX: cfg.BalloonRadiusX, RadiusY: cfg.BalloonRadiusY}
}

// Draw renders the balloon at its current position.
func (s BalloonSprite) Draw(ctx DrawContext) error {
	b := s.Balloon
	c := ctx.Canvas

	bottom := b.Y + s.RadiusY
	c.DrawVLine(b.X, bottom, bottom+stringLength, '│', b.Color)
	c.FillEllipse(b.X, b.Y, s.RadiusX, s.RadiusY, draw.BlockFull, b.Color)
	c.Set(b.X-s.RadiusX*shineOffset, b.Y-s.RadiusY*shineOffset, draw.BlockLight, shineColor)
	return nil
}
