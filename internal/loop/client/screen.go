package client

import (
	"fmt"
	"time"

	"github.com/tomz197/balloons/internal/draw"
	"github.com/tomz197/balloons/internal/loop/config"
	"github.com/tomz197/balloons/internal/object"
)

const (
	startLabel = "[ Start Playing! ]"
	stopLabel  = "[ Stop Game ]"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		draw.ClearScreen(c.chunkWriter)
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	ctx := object.DrawContext{
		Canvas: c.canvas,
		Now:    c.session.Now(),
	}

	cfg := c.session.Config()
	for _, b := range c.session.Balloons() {
		if err := object.NewBalloonSprite(b, cfg).Draw(ctx); err != nil {
			return err
		}
	}
	for _, p := range c.session.Particles() {
		if err := object.NewParticleSprite(p, cfg).Draw(ctx); err != nil {
			return err
		}
	}

	if err := c.drawUI(ctx); err != nil {
		return err
	}

	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	return c.chunkWriter.Flush()
}

// drawUI draws the overlay for the current screen. UI text goes through the
// canvas so it is diffed together with the balloons.
func (c *Client) drawUI(ctx object.DrawContext) error {
	width := c.canvas.TerminalWidth()
	height := c.canvas.TerminalHeight()

	var texts []object.Text
	switch {
	case c.state.GameState == GameStateShutdown:
		texts = c.shutdownScreen(width, height)
	case c.state.isInactive:
		texts = c.inactivityScreen(width, height)
	case c.state.GameState == GameStatePlaying:
		texts = c.playingHUD(width, height)
	default:
		texts = c.startScreen(width, height)
	}

	for _, t := range texts {
		if err := t.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// playingHUD returns the score line, stop button and current message.
func (c *Client) playingHUD(width, height int) []object.Text {
	score := fmt.Sprintf("★ %d", c.session.Score())
	if best := c.session.HighScore(); best > 0 {
		score += fmt.Sprintf("   ♛ %d", best)
	}

	c.state.stopButton = object.Text{Row: 0, Value: stopLabel, Color: config.ColorButton, Bold: true}
	c.state.stopButton.Col = max(0, width-c.state.stopButton.Width()-1)

	texts := []object.Text{
		object.Text{Row: 0, Value: score, Color: config.ColorScore, Bold: true}.Centered(width),
		c.state.stopButton,
		object.Text{Row: height - 1, Value: "click a balloon to pop it · x stop · q quit", Color: config.ColorHint}.Centered(width),
	}

	if msg := c.session.Message(); msg != "" {
		texts = append(texts, object.Text{
			Row:   height / 5,
			Value: "✦ " + msg + " ✦",
			Color: config.ColorMessage,
			Bold:  true,
		}.Centered(width))
	}
	return texts
}

// startScreen returns the title card.
func (c *Client) startScreen(width, height int) []object.Text {
	center := height / 2
	texts := []object.Text{
		object.Text{Row: center - 4, Value: "B A L L O O N   P O P !", Color: config.ColorTitle, Bold: true}.Centered(width),
		object.Text{Row: center - 2, Value: "Pop the balloons before they float away!"}.Centered(width),
	}
	if best := c.session.HighScore(); best > 0 {
		texts = append(texts, object.Text{Row: center, Value: fmt.Sprintf("♛ Best Score: %d", best), Color: config.ColorScore}.Centered(width))
	}

	c.state.startButton = object.Text{Row: center + 2, Value: startLabel, Color: config.ColorButton, Bold: true}.Centered(width)
	texts = append(texts,
		c.state.startButton,
		object.Text{Row: center + 4, Value: "click or press s / Enter to start · q to quit", Color: config.ColorHint}.Centered(width),
	)
	return texts
}

// inactivityScreen returns the inactivity warning.
func (c *Client) inactivityScreen(width, height int) []object.Text {
	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	return []object.Text{
		object.Text{Row: height/2 - 2, Value: "INACTIVITY WARNING", Color: config.ColorTitle, Bold: true}.Centered(width),
		object.Text{Row: height / 2, Value: fmt.Sprintf("You will be disconnected in %d seconds.", remaining)}.Centered(width),
		object.Text{Row: height/2 + 2, Value: "Press any key to continue", Color: config.ColorHint}.Centered(width),
	}
}

// shutdownScreen returns the shutdown notice.
func (c *Client) shutdownScreen(width, height int) []object.Text {
	return []object.Text{
		object.Text{Row: height/2 - 2, Value: "SERVER SHUTTING DOWN", Color: config.ColorTitle, Bold: true}.Centered(width),
		object.Text{Row: height / 2, Value: "The server is restarting. Thanks for playing!"}.Centered(width),
		object.Text{Row: height/2 + 2, Value: fmt.Sprintf("Disconnecting in %d seconds...", int(c.state.shutdownTimer)+1), Color: config.ColorHint}.Centered(width),
	}
}
