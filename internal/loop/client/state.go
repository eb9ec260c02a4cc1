package client

import (
	"time"

	"github.com/tomz197/spaceship/internal/input"
	"github.com/tomz197/spaceship/internal/loop/world"
)

// ClientState holds per-session state around the simulation: input,
// connection status and what the last finished game produced.
type ClientState struct {
	Input         input.Input
	Running       bool          // Client loop running
	Shutdown      bool          // Server is shutting down
	LastGame      world.Outcome // Most recent finished game, shown on the title screen
	HasLastGame   bool
	Rank          int // Leaderboard position of LastGame, 0 if not placed
	PersonalBest  bool
	delta         time.Duration
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool    // Whether the client is in inactive warning state
	wasInactive   bool
	prevGameState world.GameState
	prevShutdown  bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running:       true,
		prevGameState: world.StateIdle,
	}
}
