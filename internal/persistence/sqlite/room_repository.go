package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/roombooking/internal/booking"
	"github.com/example/roombooking/internal/persistence"
)

// RoomRepository implements booking.RoomRepository on SQLite.
type RoomRepository struct {
	db *sql.DB
}

// NewRoomRepository creates a room repository over the given database handle.
func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// NextRoomID allocates the next room id from the shared sequence table.
func (r *RoomRepository) NextRoomID(ctx context.Context) (int64, error) {
	return nextID(ctx, r.db, "rooms")
}

// AddRoom inserts a new room.
func (r *RoomRepository) AddRoom(ctx context.Context, room booking.Room) (booking.Room, error) {
	if room.ID <= 0 {
		return booking.Room{}, persistence.ErrConstraintViolation
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (id, name, capacity) VALUES (?, ?, ?)`,
		room.ID, room.Name, room.Capacity,
	)
	if err != nil {
		return booking.Room{}, fmt.Errorf("insert room %d: %w", room.ID, err)
	}
	return room, nil
}

// GetRoom retrieves a room by id.
func (r *RoomRepository) GetRoom(ctx context.Context, id int64) (booking.Room, error) {
	var room booking.Room
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, capacity FROM rooms WHERE id = ?`, id,
	).Scan(&room.ID, &room.Name, &room.Capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.Room{}, persistence.ErrNotFound
		}
		return booking.Room{}, fmt.Errorf("select room %d: %w", id, err)
	}
	return room, nil
}

// ListRooms returns all rooms ordered by id.
func (r *RoomRepository) ListRooms(ctx context.Context) ([]booking.Room, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, capacity FROM rooms ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select rooms: %w", err)
	}
	defer rows.Close()

	var rooms []booking.Room
	for rows.Next() {
		var room booking.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}
	return rooms, nil
}

// UpdateRoom stores the room with replace-by-id semantics. There is no
// existence precondition: a missing row is inserted.
func (r *RoomRepository) UpdateRoom(ctx context.Context, room booking.Room) (booking.Room, error) {
	if room.ID <= 0 {
		return booking.Room{}, persistence.ErrConstraintViolation
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO rooms (id, name, capacity) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, capacity = excluded.capacity
	`, room.ID, room.Name, room.Capacity)
	if err != nil {
		return booking.Room{}, fmt.Errorf("upsert room %d: %w", room.ID, err)
	}
	return room, nil
}

// RemoveRoom deletes a room by id, reporting whether a row was removed.
func (r *RoomRepository) RemoveRoom(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete room %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
