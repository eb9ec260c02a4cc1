package world

// GameState is the top-level mode of a play session.
type GameState int

const (
	StateIdle    GameState = iota // Title or game-over screen, waiting for start
	StatePlaying                  // Simulation running
	StatePaused                   // Simulation frozen, still rendered
)

func (s GameState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}
