package object

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/tomz197/balloons/internal/draw"
	"github.com/tomz197/balloons/internal/game"
)

func newCanvas() *draw.Canvas {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return draw.NewScaledCanvas(100, 100, 100, 100, r)
}

func countColor(c *draw.Canvas, color string) int {
	n := 0
	for row := 0; row < c.TerminalHeight(); row++ {
		for col := 0; col < c.TerminalWidth(); col++ {
			if c.At(col, row).Color == color {
				n++
			}
		}
	}
	return n
}

func TestBalloonSpriteDrawsBodyAndString(t *testing.T) {
	c := newCanvas()
	b := game.Balloon{ID: 1, X: 40, Y: 30, Color: "#10b981", Speed: 2}
	sprite := NewBalloonSprite(b, game.DefaultConfig())

	if err := sprite.Draw(DrawContext{Canvas: c}); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	if got := c.At(40, 30); got.Ch != draw.BlockFull || got.Color != b.Color {
		t.Fatalf("body center = %+v", got)
	}
	if got := c.At(40, 40); got.Ch != '│' {
		t.Fatalf("string cell = %+v", got)
	}
	if countColor(c, "#f8fafc") != 1 {
		t.Fatalf("expected a single shine cell")
	}
}

func TestParticleSpriteMovesOutwardAndFades(t *testing.T) {
	cfg := game.DefaultConfig()
	p := game.Particle{ID: 1, Index: 0, X: 50, Y: 50, Color: "#ef4444", Born: time.Second}
	sprite := NewParticleSprite(p, cfg)

	x, y := sprite.Position(time.Second)
	if x != 50 || y != 50 {
		t.Fatalf("start position = %v,%v", x, y)
	}

	x, y = sprite.Position(time.Second + 300*time.Millisecond)
	if x <= 50 || math.Abs(y-50) > 1e-9 {
		t.Fatalf("index 0 should fly right, got %v,%v", x, y)
	}

	x, _ = sprite.Position(time.Second + time.Hour)
	if math.Abs(x-(50+burstSpread)) > 1e-9 {
		t.Fatalf("end position x = %v", x)
	}

	if got := sprite.Progress(0); got != 0 {
		t.Fatalf("progress before birth = %v", got)
	}
}

func TestParticleSpriteSkipsExpired(t *testing.T) {
	c := newCanvas()
	sprite := NewParticleSprite(game.Particle{X: 50, Y: 50, Color: "#ef4444"}, game.DefaultConfig())

	_ = sprite.Draw(DrawContext{Canvas: c, Now: 600 * time.Millisecond})
	if countColor(c, "#ef4444") != 0 {
		t.Fatalf("expired particle drawn")
	}

	_ = sprite.Draw(DrawContext{Canvas: c, Now: 0})
	if got := c.At(50, 50); got.Ch != fadeSymbols[0] {
		t.Fatalf("fresh particle = %+v", got)
	}
}

func TestTextContainsAndCentered(t *testing.T) {
	txt := Text{Row: 3, Value: "[ Stop ]"}.Centered(20)
	if txt.Col != 6 {
		t.Fatalf("col=%d, want 6", txt.Col)
	}
	if !txt.Contains(6, 3) || !txt.Contains(13, 3) {
		t.Fatalf("text edges not contained")
	}
	if txt.Contains(14, 3) || txt.Contains(8, 2) {
		t.Fatalf("text contains cells outside it")
	}
}
