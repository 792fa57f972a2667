// Package config centralizes the tunables of the terminal client.
// Game rules live in game.Config.
package config

import "time"

// Logical resolution of the play area. Balloon coordinates are percentages,
// so the canvas maps 100x100 logical units onto the terminal.
const (
	LogicalWidth  = 100
	LogicalHeight = 100
)

// Maximum render resolution; larger terminals get a centered, bordered play area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS

	// MaxFrameDelta caps how much game time one frame may advance, so a stalled
	// connection does not fast-forward through a burst of spawns.
	MaxFrameDelta = 250 * time.Millisecond
)

// Colors used by the HUD and menus.
const (
	ColorTitle   = "#ef4444"
	ColorScore   = "#3b82f6"
	ColorMessage = "#f59e0b"
	ColorButton  = "#10b981"
	ColorHint    = "#94a3b8"
)
