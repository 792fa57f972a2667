package object

import "github.com/charmbracelet/lipgloss"

// Text is a line of text at a 0-based canvas cell.
type Text struct {
	Col   int
	Row   int
	Value string
	Color string
	Bold  bool
}

// Draw writes the text onto the canvas.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	ctx.Canvas.DrawText(t.Col, t.Row, t.Value, t.Color, t.Bold)
	return nil
}

// Width returns the number of cells the text occupies.
func (t Text) Width() int {
	return lipgloss.Width(t.Value)
}

// Contains reports whether the 0-based cell (col, row) lies on the text.
func (t Text) Contains(col, row int) bool {
	return row == t.Row && col >= t.Col && col < t.Col+t.Width()
}

// Centered returns a copy of the text horizontally centered in width columns.
func (t Text) Centered(width int) Text {
	t.Col = (width - t.Width()) / 2
	return t
}
