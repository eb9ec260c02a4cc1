package server

import "github.com/tomz197/spaceship/internal/scores"

// Snapshot is an immutable view of the hub shared with every client.
type Snapshot struct {
	Players   int            // Connected clients
	TopScores []scores.Entry // Leaderboard, best first
}

// ClientHandle represents a client's connection to the hub.
type ClientHandle struct {
	ID       int
	Username string           // Display name, also the leaderboard name
	EventsCh chan ClientEvent // Events sent to the client (shutdown, score saved)
}

// ClientEvent represents an event sent from the hub to a client.
type ClientEvent struct {
	Type         ClientEventType
	Rank         int  // Leaderboard position for EventScoreRecorded, 0 if not placed
	PersonalBest bool // The recorded game beat the player's previous best
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventScoreRecorded ClientEventType = iota
	EventServerShutdown
)

// GameResult is a finished game reported by a client.
type GameResult struct {
	ClientID int
	Name     string
	Score    int
	Level    int
}
