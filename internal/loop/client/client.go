// Package client runs one player's game: input, session updates and drawing.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/balloons/internal/draw"
	"github.com/tomz197/balloons/internal/game"
	"github.com/tomz197/balloons/internal/input"
	"github.com/tomz197/balloons/internal/loop/config"
	"github.com/tomz197/balloons/internal/loop/server"
	"github.com/tomz197/balloons/internal/timer"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	session      *game.Session
	sched        *timer.Scheduler
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Config       *game.Config       // Defaults to game.DefaultConfig()
	Seed         uint64             // 0 picks a time-based seed
	Renderer     *lipgloss.Renderer // Color detection for the output; defaults to lipgloss.DefaultRenderer()
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	cfg := game.DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	sched := timer.New()
	session := game.NewSession(cfg, sched, game.NewRand(seed))

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.LogicalWidth, config.LogicalHeight, opts.Renderer)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       gs.RegisterClient(opts.Username),
		state:        NewClientState(),
		session:      session,
		sched:        sched,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
	}
}

// Run starts the client loop. Blocks until the player quits, goes inactive or
// the server shuts down.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	input.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer input.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	defer c.server.UnregisterClient(c.handle.ID)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := c.step(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.session.Stop()
	draw.ClearScreen(c.writer)
	return nil
}

// step runs one frame: input, server events, resize, update and draw.
func (c *Client) step() error {
	c.processInput()
	return c.update()
}

// update runs the rest of a frame once input has been read.
func (c *Client) update() error {
	c.processServerEvents()
	c.updateScreen()

	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState()
	case GameStatePlaying:
		c.updatePlayingState()
	case GameStateShutdown:
		c.updateShutdownState()
	}

	return c.drawFrame()
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				if c.state.GameState != GameStateShutdown {
					c.session.Stop()
					c.state.GameState = GameStateShutdown
					c.state.shutdownTimer = config.ShutdownDisplaySeconds
				}
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual cells
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.chunkWriter)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// canvasCell converts a click to 0-based canvas coordinates.
func (c *Client) canvasCell(click input.Click) (col, row int) {
	return click.Col - 1 - c.canvas.OffsetCol(), click.Row - 1 - c.canvas.OffsetRow()
}

// updateStartState handles the start screen.
func (c *Client) updateStartState() {
	if c.state.isInactive {
		return
	}
	start := c.state.Input.Start
	for _, click := range c.state.Input.Clicks {
		if c.state.startButton.Contains(c.canvasCell(click)) {
			start = true
		}
	}
	if start {
		c.startGame()
	}
}

// updatePlayingState pops clicked balloons, then advances the game clock.
func (c *Client) updatePlayingState() {
	if c.state.Input.Stop {
		c.stopGame()
		return
	}

	for _, click := range c.state.Input.Clicks {
		if c.state.stopButton.Contains(c.canvasCell(click)) {
			c.stopGame()
			return
		}
		x, y, ok := c.canvas.TerminalToLogical(click.Col, click.Row)
		if !ok {
			continue
		}
		if id, hit := c.session.BalloonAt(x, y); hit {
			c.session.Pop(id)
		}
	}

	c.sched.Advance(min(c.state.delta, config.MaxFrameDelta))
}

// startGame starts a new play-through.
func (c *Client) startGame() {
	c.session.Start()
	c.state.GameState = GameStatePlaying
}

// stopGame ends the play-through and returns to the title screen.
func (c *Client) stopGame() {
	c.session.Stop()
	c.state.GameState = GameStateStart
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
