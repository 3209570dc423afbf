// Package store persists received telemetry records in a local sqlite
// database so the collector can answer per-category stats and recent
// event queries.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id          TEXT PRIMARY KEY,
	category    TEXT NOT NULL,
	bot_id      INTEGER NOT NULL DEFAULT 0,
	user_id     INTEGER NOT NULL DEFAULT 0,
	chat_id     INTEGER NOT NULL DEFAULT 0,
	received_at TEXT NOT NULL,
	payload     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);
CREATE INDEX IF NOT EXISTS idx_events_received ON events(received_at);
`

// Event is one stored telemetry record plus its dimensions.
type Event struct {
	ID         string
	Category   string
	BotID      int64
	UserID     int64
	ChatID     int64
	ReceivedAt time.Time
	Payload    []byte
}

// Store wraps the events database. Safe for concurrent use; sqlite
// serializes writers underneath.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open events db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init events schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Insert stores a record, assigning it a fresh ID.
func (s *Store) Insert(ctx context.Context, e Event) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.ReceivedAt.IsZero() {
		e.ReceivedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, category, bot_id, user_id, chat_id, received_at, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Category, e.BotID, e.UserID, e.ChatID,
		e.ReceivedAt.UTC().Format(time.RFC3339Nano), string(e.Payload))
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return e.ID, nil
}

// CountByCategory returns the number of stored events per category.
func (s *Store) CountByCategory(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM events GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var cat string
		var n int64
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("scan count row: %w", err)
		}
		counts[cat] = n
	}
	return counts, rows.Err()
}

// Recent returns up to limit events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, bot_id, user_id, chat_id, received_at, payload
		 FROM events ORDER BY received_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var receivedAt, payload string
		if err := rows.Scan(&e.ID, &e.Category, &e.BotID, &e.UserID, &e.ChatID, &receivedAt, &payload); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		e.ReceivedAt, _ = time.Parse(time.RFC3339Nano, receivedAt)
		e.Payload = []byte(payload)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
