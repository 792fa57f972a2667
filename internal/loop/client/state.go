package client

import (
	"time"

	"github.com/tomz197/balloons/internal/input"
	"github.com/tomz197/balloons/internal/object"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen, session idle
	GameStatePlaying                   // Session running
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-player UI state. Game state lives in the session.
type ClientState struct {
	Input         input.Input
	GameState     GameState     // This client's screen
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time (client-side)
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state

	// Last drawn state, to detect transitions that need a full repaint
	prevGameState GameState
	wasInactive   bool

	// Clickable controls as last drawn
	startButton object.Text
	stopButton  object.Text
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}
