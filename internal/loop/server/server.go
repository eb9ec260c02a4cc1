// Package server is the hub every play session connects to. Each session
// simulates its own world; the hub tracks who is connected, persists finished
// games and publishes the leaderboard.
package server

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceship/internal/loop/config"
	"github.com/tomz197/spaceship/internal/scores"
)

// GameServer is the interface clients use to communicate with the hub.
// Decouples the Client from the concrete Server implementation, enabling
// testing.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportGameOver(clientID int, score, level int)
	GetSnapshot() *Snapshot
}

// ScoreStore persists finished games.
type ScoreStore interface {
	Record(ctx context.Context, e scores.Entry) error
	Top(ctx context.Context, n int) ([]scores.Entry, error)
	Best(ctx context.Context, name string) (int, error)
}

// Server tracks connected clients and owns the leaderboard.
type Server struct {
	store        ScoreStore // nil disables the leaderboard
	log          *log.Logger
	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	registerCh   chan *ClientHandle
	unregisterCh chan int
	resultsCh    chan GameResult
	mu           sync.RWMutex
	topScores    []scores.Entry
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer creates a hub. store and logger may be nil.
func NewServer(store ScoreStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		store:        store,
		log:          logger,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		resultsCh:    make(chan GameResult, 16),
	}
	s.snapshot.Store(&Snapshot{})
	return s
}

// Run processes registrations and game results and refreshes the
// leaderboard. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	s.refreshLeaderboard(ctx)

	ticker := time.NewTicker(config.LeaderboardRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.log.Info("client joined", "id", handle.ID, "user", handle.Username)
			s.publish()
		case clientID := <-s.unregisterCh:
			// Results are always reported before the client leaves.
			s.drainResults(ctx)
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
			}
			s.mu.Unlock()
			s.log.Info("client left", "id", clientID)
			s.publish()
		case result := <-s.resultsCh:
			s.recordResult(ctx, result)
		case <-ticker.C:
			s.refreshLeaderboard(ctx)
		}
	}
}

// Shutdown gracefully shuts down the hub by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the hub.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// ReportGameOver queues a finished game for persistence.
func (s *Server) ReportGameOver(clientID int, score, level int) {
	s.mu.RLock()
	handle, ok := s.clients[clientID]
	s.mu.RUnlock()
	if !ok {
		s.log.Warn("game over from unknown client", "id", clientID)
		return
	}

	select {
	case s.resultsCh <- GameResult{ClientID: clientID, Name: handle.Username, Score: score, Level: level}:
	default:
		s.log.Warn("results queue full, dropping score", "id", clientID, "score", score)
	}
}

// drainResults records every queued result without blocking.
func (s *Server) drainResults(ctx context.Context) {
	for {
		select {
		case r := <-s.resultsCh:
			s.recordResult(ctx, r)
		default:
			return
		}
	}
}

// GetSnapshot returns the current hub snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// recordResult stores a game and tells its client where it placed.
func (s *Server) recordResult(ctx context.Context, r GameResult) {
	if s.store == nil || r.Score <= 0 {
		return
	}

	prevBest, err := s.store.Best(ctx, r.Name)
	if err != nil {
		s.log.Warn("failed to load personal best", "user", r.Name, "err", err)
	}

	err = s.store.Record(ctx, scores.Entry{
		Name:  r.Name,
		Score: r.Score,
		Level: r.Level,
		At:    time.Now(),
	})
	if err != nil {
		s.log.Error("failed to record score", "user", r.Name, "err", err)
		return
	}
	s.log.Info("score recorded", "user", r.Name, "score", r.Score, "level", r.Level)
	s.refreshLeaderboard(ctx)

	rank := 0
	for _, e := range s.topScores {
		if e.Name == r.Name && e.Score == r.Score {
			rank = e.Rank
			break
		}
	}

	s.mu.RLock()
	if handle, ok := s.clients[r.ClientID]; ok {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventScoreRecorded, Rank: rank, PersonalBest: r.Score > prevBest}:
		default:
		}
	}
	s.mu.RUnlock()
}

// refreshLeaderboard reloads the top scores from the store.
func (s *Server) refreshLeaderboard(ctx context.Context) {
	if s.store == nil {
		return
	}
	top, err := s.store.Top(ctx, config.LeaderboardSize)
	if err != nil {
		s.log.Error("failed to load leaderboard", "err", err)
		return
	}
	s.topScores = top
	s.publish()
}

// publish stores a new immutable snapshot for clients.
func (s *Server) publish() {
	s.mu.RLock()
	players := len(s.clients)
	s.mu.RUnlock()

	s.snapshot.Store(&Snapshot{
		Players:   players,
		TopScores: s.topScores,
	})
}
