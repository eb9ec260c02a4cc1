// Package scores persists finished games in a SQLite database and serves
// the leaderboard.
package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrEmptyName is returned when a score is recorded without a player name.
var ErrEmptyName = errors.New("player name is required")

// Entry is one finished game.
type Entry struct {
	Rank  int // 1-based position, set by TopScores
	Name  string
	Score int
	Level int
	At    time.Time
}

// Store wraps the SQLite connection.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open scores db: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate scores db: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		score INTEGER NOT NULL,
		level INTEGER NOT NULL,
		played_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC, played_at ASC);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Record stores a finished game.
func (s *Store) Record(ctx context.Context, e Entry) error {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return ErrEmptyName
	}
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err := s.conn.ExecContext(ctx,
		"INSERT INTO scores (name, score, level, played_at) VALUES (?, ?, ?, ?)",
		name, e.Score, e.Level, at.Unix(),
	)
	if err != nil {
		return fmt.Errorf("record score: %w", err)
	}
	return nil
}

// Top returns the n best games, highest score first. Ties go to the
// earlier game.
func (s *Store) Top(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT name, score, level, played_at FROM scores
		ORDER BY score DESC, played_at ASC, id ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.Name, &e.Score, &e.Level, &at); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		e.At = time.Unix(at, 0)
		e.Rank = len(result) + 1
		result = append(result, e)
	}
	return result, rows.Err()
}

// Best returns the highest score recorded for name, or 0 if there is none.
func (s *Store) Best(ctx context.Context, name string) (int, error) {
	var best sql.NullInt64
	err := s.conn.QueryRowContext(ctx,
		"SELECT MAX(score) FROM scores WHERE name = ?", strings.TrimSpace(name),
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("query best score: %w", err)
	}
	return int(best.Int64), nil
}
