package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/roombooking/internal/booking"
	"github.com/example/roombooking/internal/persistence"
)

// EventRepository implements booking.EventRepository on SQLite. Timestamps
// are stored as RFC3339 text columns.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates an event repository over the given database handle.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// NextEventID allocates the next event id from the shared sequence table.
func (r *EventRepository) NextEventID(ctx context.Context) (int64, error) {
	return nextID(ctx, r.db, "events")
}

// AddEvent inserts a new event.
func (r *EventRepository) AddEvent(ctx context.Context, event booking.Event) (booking.Event, error) {
	if event.ID <= 0 {
		return booking.Event{}, persistence.ErrConstraintViolation
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, room_id, title, start_at, end_at) VALUES (?, ?, ?, ?, ?)`,
		event.ID, event.RoomID, event.Title,
		event.Start.UTC().Format(time.RFC3339),
		event.End.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return booking.Event{}, fmt.Errorf("insert event %d: %w", event.ID, err)
	}
	return event, nil
}

// GetEvent retrieves an event by id.
func (r *EventRepository) GetEvent(ctx context.Context, id int64) (booking.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, room_id, title, start_at, end_at FROM events WHERE id = ?`, id,
	)
	event, err := scanEvent(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.Event{}, persistence.ErrNotFound
		}
		return booking.Event{}, fmt.Errorf("select event %d: %w", id, err)
	}
	return event, nil
}

// ListEvents returns all events ordered by id, matching insertion order.
func (r *EventRepository) ListEvents(ctx context.Context) ([]booking.Event, error) {
	return r.queryEvents(ctx, `SELECT id, room_id, title, start_at, end_at FROM events ORDER BY id`)
}

// ListEventsByRoom returns the events scheduled in the given room, keeping
// their relative insertion order.
func (r *EventRepository) ListEventsByRoom(ctx context.Context, roomID int64) ([]booking.Event, error) {
	return r.queryEvents(ctx,
		`SELECT id, room_id, title, start_at, end_at FROM events WHERE room_id = ? ORDER BY id`,
		roomID,
	)
}

// UpdateEvent stores the event with replace-by-id semantics. There is no
// existence precondition: a missing row is inserted.
func (r *EventRepository) UpdateEvent(ctx context.Context, event booking.Event) (booking.Event, error) {
	if event.ID <= 0 {
		return booking.Event{}, persistence.ErrConstraintViolation
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (id, room_id, title, start_at, end_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			room_id = excluded.room_id,
			title = excluded.title,
			start_at = excluded.start_at,
			end_at = excluded.end_at
	`, event.ID, event.RoomID, event.Title,
		event.Start.UTC().Format(time.RFC3339),
		event.End.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return booking.Event{}, fmt.Errorf("upsert event %d: %w", event.ID, err)
	}
	return event, nil
}

// RemoveEvent deletes an event by id, reporting whether a row was removed.
func (r *EventRepository) RemoveEvent(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete event %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *EventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]booking.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()

	var events []booking.Event
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func scanEvent(scan func(dest ...any) error) (booking.Event, error) {
	var event booking.Event
	var startStr, endStr string
	if err := scan(&event.ID, &event.RoomID, &event.Title, &startStr, &endStr); err != nil {
		return booking.Event{}, err
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return booking.Event{}, fmt.Errorf("parse start_at %q: %w", startStr, err)
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return booking.Event{}, fmt.Errorf("parse end_at %q: %w", endStr, err)
	}

	event.Start = start
	event.End = end
	return event, nil
}
