// Package draw renders colored cells to an ANSI terminal.
package draw

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/balloons/internal/physics"
)

// Block characters for drawing.
const (
	BlockFull  = '█'
	BlockLight = '░'
	BlockEmpty = ' '
)

// Cell is one terminal character with its style. Color is a hex color or ""
// for the terminal default.
type Cell struct {
	Ch    rune
	Color string
	Bold  bool
}

var emptyCell = Cell{Ch: BlockEmpty}

// Canvas is a grid of terminal cells addressed in logical coordinates.
// Render only emits the cells that changed since the previous frame.
type Canvas struct {
	termWidth  int    // Actual terminal columns
	termHeight int    // Actual terminal rows
	cells      []Cell // Flat slice: [row * termWidth + col]
	prev       []Cell // What the terminal currently shows
	redraw     bool   // Ignore prev on the next Render

	// Scaling from logical to cell coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // termHeight / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderer  *lipgloss.Renderer
	styles    map[Cell]lipgloss.Style // Keyed by Cell with Ch zeroed
	renderBuf strings.Builder
	runBuf    strings.Builder
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal cells.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64, r *lipgloss.Renderer) *Canvas {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		renderer:      r,
		styles:        make(map[Cell]lipgloss.Style),
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}

	if termWidth != c.termWidth || termHeight != c.termHeight || c.cells == nil {
		c.cells = make([]Cell, termWidth*termHeight)
		c.prev = make([]Cell, termWidth*termHeight)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.Clear()
		c.redraw = true
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(termHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.redraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.redraw = true
}

// Clear resets all cells to blank.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = emptyCell
	}
}

// setCell sets a cell at 0-based terminal coordinates (no scaling).
func (c *Canvas) setCell(col, row int, cell Cell) {
	if col >= 0 && col < c.termWidth && row >= 0 && row < c.termHeight {
		c.cells[row*c.termWidth+col] = cell
	}
}

// At returns the cell at 0-based terminal coordinates.
func (c *Canvas) At(col, row int) Cell {
	if col < 0 || col >= c.termWidth || row < 0 || row >= c.termHeight {
		return emptyCell
	}
	return c.cells[row*c.termWidth+col]
}

// toCell converts logical coordinates to a 0-based cell.
func (c *Canvas) toCell(x, y float64) (col, row int) {
	return int(math.Floor(x * c.scaleX)), int(math.Floor(y * c.scaleY))
}

// Set sets the cell containing the logical point (x, y).
func (c *Canvas) Set(x, y float64, ch rune, color string) {
	col, row := c.toCell(x, y)
	c.setCell(col, row, Cell{Ch: ch, Color: color})
}

// FillEllipse fills every cell whose center lies inside the ellipse.
// The cell holding the center is always filled so tiny terminals still show it.
func (c *Canvas) FillEllipse(cx, cy, rx, ry float64, ch rune, color string) {
	if c.scaleX <= 0 || c.scaleY <= 0 {
		return
	}
	cell := Cell{Ch: ch, Color: color}

	colStart, rowStart := c.toCell(cx-rx, cy-ry)
	colEnd, rowEnd := c.toCell(cx+rx, cy+ry)
	for row := rowStart; row <= rowEnd; row++ {
		y := (float64(row) + 0.5) / c.scaleY
		for col := colStart; col <= colEnd; col++ {
			x := (float64(col) + 0.5) / c.scaleX
			if physics.PointInEllipse(x, y, cx, cy, rx, ry) {
				c.setCell(col, row, cell)
			}
		}
	}

	col, row := c.toCell(cx, cy)
	c.setCell(col, row, cell)
}

// DrawVLine draws a vertical line from y1 to y2 at logical x.
func (c *Canvas) DrawVLine(x, y1, y2 float64, ch rune, color string) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	col, rowStart := c.toCell(x, y1)
	_, rowEnd := c.toCell(x, y2)
	for row := rowStart; row <= rowEnd; row++ {
		c.setCell(col, row, Cell{Ch: ch, Color: color})
	}
}

// DrawText writes s starting at the 0-based cell (col, row). Text is clipped at
// the canvas edges.
func (c *Canvas) DrawText(col, row int, s, color string, bold bool) {
	for _, r := range s {
		c.setCell(col, row, Cell{Ch: r, Color: color, Bold: bold})
		col++
	}
}

// style returns the cached lipgloss style for a cell's attributes.
func (c *Canvas) style(cell Cell) lipgloss.Style {
	key := Cell{Color: cell.Color, Bold: cell.Bold}
	if st, ok := c.styles[key]; ok {
		return st
	}
	st := c.renderer.NewStyle().Bold(cell.Bold)
	if cell.Color != "" {
		st = st.Foreground(lipgloss.Color(cell.Color))
	}
	c.styles[key] = st
	return st
}

// plain reports whether a cell needs no styling.
func plain(cell Cell) bool {
	return cell.Color == "" && !cell.Bold
}

// Render writes every changed cell to w. Consecutive changed cells with the
// same style are written as a single styled run.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	full := c.redraw
	c.redraw = false

	for row := 0; row < c.termHeight; row++ {
		base := row * c.termWidth
		col := 0
		for col < c.termWidth {
			cell := c.cells[base+col]
			if !full && cell == c.prev[base+col] {
				col++
				continue
			}

			// Start of a run of changed cells sharing one style
			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			c.runBuf.Reset()
			attrs := Cell{Color: cell.Color, Bold: cell.Bold}
			for col < c.termWidth {
				next := c.cells[base+col]
				if (!full && next == c.prev[base+col]) || (Cell{Color: next.Color, Bold: next.Bold}) != attrs {
					break
				}
				c.runBuf.WriteRune(next.Ch)
				c.prev[base+col] = next
				col++
			}

			if plain(attrs) {
				c.renderBuf.WriteString(c.runBuf.String())
			} else {
				c.renderBuf.WriteString(c.style(attrs).Render(c.runBuf.String()))
			}
		}
	}

	io.WriteString(w, c.renderBuf.String())
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// TerminalToLogical converts a 1-based terminal position (as reported by mouse
// events, offset included) to the logical coordinates of that cell's center.
// ok is false when the position lies outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	cellCol := col - 1 - c.offsetCol
	cellRow := row - 1 - c.offsetRow
	if cellCol < 0 || cellCol >= c.termWidth || cellRow < 0 || cellRow >= c.termHeight {
		return 0, 0, false
	}
	x = (float64(cellCol) + 0.5) / c.scaleX
	y = (float64(cellRow) + 0.5) / c.scaleY
	return x, y, true
}
