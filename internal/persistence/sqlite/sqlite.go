// Package sqlite provides the persistent repository adapter backed by
// modernc.org/sqlite (pure Go, no CGO).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// migrations are applied in order; the index in this slice plus one is the
// schema version recorded in schema_migrations.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		capacity INTEGER NOT NULL CHECK (capacity > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY,
		room_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_room ON events(room_id)`,
	`CREATE TABLE IF NOT EXISTS id_sequences (
		name TEXT PRIMARY KEY,
		last_id INTEGER NOT NULL
	)`,
}

// Storage owns the database handle and hands out the repositories bound to it.
type Storage struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at the given DSN.
func Open(dsn string) (*Storage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// modernc sqlite serialises writes; a single connection avoids
	// SQLITE_BUSY on concurrent statements.
	db.SetMaxOpenConns(1)
	return &Storage{db: db}, nil
}

// DB returns the underlying database handle.
func (s *Storage) DB() *sql.DB {
	return s.db
}

// Close releases the database handle.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping verifies the database connection.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Rooms returns the room repository bound to this database.
func (s *Storage) Rooms() *RoomRepository {
	return NewRoomRepository(s.db)
}

// Events returns the event repository bound to this database.
func (s *Storage) Events() *EventRepository {
	return NewEventRepository(s.db)
}

// Migrate brings the schema up to date, applying pending statements in order
// and recording each applied version in schema_migrations.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		return fmt.Errorf("initialize schema_migrations: %w", err)
	}

	var current int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		version := i + 1
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration %d: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", version, err)
		}
	}
	return nil
}

// nextID atomically advances and returns the sequence registered under name.
// The counter only ever grows, so ids are never reused after removals.
func nextID(ctx context.Context, db *sql.DB, name string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO id_sequences (name, last_id) VALUES (?, 1)
		ON CONFLICT(name) DO UPDATE SET last_id = last_id + 1
		RETURNING last_id
	`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("allocate %s id: %w", name, err)
	}
	return id, nil
}
