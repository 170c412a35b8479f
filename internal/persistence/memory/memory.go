// Package memory provides the in-memory repository adapter used by tests and
// single-process deployments. Entities live in insertion-ordered slices
// guarded by a mutex held for the duration of each operation, so a
// concurrent caller's check-then-act sequence observes a consistent store.
package memory

import (
	"context"
	"sync"

	"github.com/example/roombooking/internal/booking"
	"github.com/example/roombooking/internal/persistence"
)

// Storage implements booking.RoomRepository and booking.EventRepository over
// in-memory slices. Id allocation uses monotonic per-entity counters that
// advance on every insert, so an id is never handed out twice even after the
// highest-id entity is removed.
type Storage struct {
	mu       sync.RWMutex
	rooms    []booking.Room
	events   []booking.Event
	roomSeq  int64
	eventSeq int64
}

// NewStorage returns an empty in-memory store.
func NewStorage() *Storage {
	return &Storage{}
}

// NewContainer wires a booking container over a fresh in-memory store.
func NewContainer() *booking.Container {
	s := NewStorage()
	return booking.NewContainer(s, s, nil)
}

// --- booking.RoomRepository implementation ---

// NextRoomID returns the next id a new room should be created with.
func (s *Storage) NextRoomID(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roomSeq + 1, nil
}

// AddRoom appends a room and advances the id counter past its id.
func (s *Storage) AddRoom(ctx context.Context, room booking.Room) (booking.Room, error) {
	if room.ID <= 0 {
		return booking.Room{}, persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if room.ID > s.roomSeq {
		s.roomSeq = room.ID
	}
	s.rooms = append(s.rooms, room)
	return room, nil
}

// GetRoom returns the room with the given id.
func (s *Storage) GetRoom(ctx context.Context, id int64) (booking.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return booking.Room{}, persistence.ErrNotFound
}

// ListRooms returns a copy of all rooms in insertion order.
func (s *Storage) ListRooms(ctx context.Context) ([]booking.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]booking.Room, len(s.rooms))
	copy(out, s.rooms)
	return out, nil
}

// UpdateRoom replaces any room with the same id and appends the given one.
// There is no existence precondition.
func (s *Storage) UpdateRoom(ctx context.Context, room booking.Room) (booking.Room, error) {
	if room.ID <= 0 {
		return booking.Room{}, persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rooms = removeRoomLocked(s.rooms, room.ID)
	if room.ID > s.roomSeq {
		s.roomSeq = room.ID
	}
	s.rooms = append(s.rooms, room)
	return room, nil
}

// RemoveRoom deletes the room with the given id, reporting whether an entry
// was removed.
func (s *Storage) RemoveRoom(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.rooms)
	s.rooms = removeRoomLocked(s.rooms, id)
	return len(s.rooms) < before, nil
}

func removeRoomLocked(rooms []booking.Room, id int64) []booking.Room {
	out := rooms[:0]
	for _, r := range rooms {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// --- booking.EventRepository implementation ---

// NextEventID returns the next id a new event should be created with.
func (s *Storage) NextEventID(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eventSeq + 1, nil
}

// AddEvent appends an event and advances the id counter past its id.
func (s *Storage) AddEvent(ctx context.Context, event booking.Event) (booking.Event, error) {
	if event.ID <= 0 {
		return booking.Event{}, persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID > s.eventSeq {
		s.eventSeq = event.ID
	}
	s.events = append(s.events, event)
	return event, nil
}

// GetEvent returns the event with the given id.
func (s *Storage) GetEvent(ctx context.Context, id int64) (booking.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.events {
		if e.ID == id {
			return e, nil
		}
	}
	return booking.Event{}, persistence.ErrNotFound
}

// ListEvents returns a copy of all events in insertion order.
func (s *Storage) ListEvents(ctx context.Context) ([]booking.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]booking.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

// ListEventsByRoom returns a copy of the events scheduled in the given room,
// preserving their relative insertion order.
func (s *Storage) ListEventsByRoom(ctx context.Context, roomID int64) ([]booking.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []booking.Event
	for _, e := range s.events {
		if e.RoomID == roomID {
			out = append(out, e)
		}
	}
	return out, nil
}

// UpdateEvent replaces any event with the same id and appends the given one.
// There is no existence precondition.
func (s *Storage) UpdateEvent(ctx context.Context, event booking.Event) (booking.Event, error) {
	if event.ID <= 0 {
		return booking.Event{}, persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = removeEventLocked(s.events, event.ID)
	if event.ID > s.eventSeq {
		s.eventSeq = event.ID
	}
	s.events = append(s.events, event)
	return event, nil
}

// RemoveEvent deletes the event with the given id, reporting whether an
// entry was removed.
func (s *Storage) RemoveEvent(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.events)
	s.events = removeEventLocked(s.events, id)
	return len(s.events) < before, nil
}

func removeEventLocked(events []booking.Event, id int64) []booking.Event {
	out := events[:0]
	for _, e := range events {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
