// Package engine defines the interface for game engines.
package engine

import (
	"time"

	"termtris/types"
)

// GameEngine is the contract between a falling-block game and its front-ends.
// Implementations are not safe for concurrent use: callers serialize ticks and
// commands on one goroutine.
type GameEngine interface {
	// Start begins a new game, discarding any game in progress.
	Start()

	// Tick advances the gravity timer by elapsed.
	Tick(elapsed time.Duration)

	// Move shifts the active piece dir columns. Returns false if rejected.
	Move(dir int) bool

	// Rotate turns the active piece clockwise (dir > 0) or counter-clockwise
	// (dir < 0). Returns false if no nearby position fits.
	Rotate(dir int) bool

	// Drop forces one gravity step immediately.
	Drop()

	// Dispatch runs a front-end command. Returns false if it had no effect.
	Dispatch(cmd Command) bool

	// GetGameState returns a snapshot of the current game.
	GetGameState() *types.GameState

	// Phase returns the lifecycle state.
	Phase() types.Phase

	// OnScore registers a callback for when a sweep clears rows.
	OnScore(func(score, lines int))

	// OnGameOver registers a callback for when a spawned piece has no room.
	// The engine stays in the game-over phase until Start is called.
	OnGameOver(func(state *types.GameState))
}

// DefaultDropInterval is the gravity period of a new game.
const DefaultDropInterval = 1000 * time.Millisecond

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Width        int           // Columns, typically 10
	Height       int           // Rows, typically 20
	DropInterval time.Duration // Time between gravity steps
	Seed         int64         // Piece sequence seed, 0 for a time-based seed
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Width:        10,
		Height:       20,
		DropInterval: DefaultDropInterval,
	}
}
