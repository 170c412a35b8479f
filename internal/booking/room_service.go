package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/example/roombooking/internal/persistence"
)

// RoomRepository captures the persistence operations needed by the service.
// Implementations allocate ids sequentially and never reuse an id after a
// removal. Returned slices are defensive copies.
type RoomRepository interface {
	NextRoomID(ctx context.Context) (int64, error)
	AddRoom(ctx context.Context, room Room) (Room, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	UpdateRoom(ctx context.Context, room Room) (Room, error)
	RemoveRoom(ctx context.Context, id int64) (bool, error)
}

// RoomOccupancy exposes the event lookup needed to guard room removal.
type RoomOccupancy interface {
	ListEventsByRoom(ctx context.Context, roomID int64) ([]Event, error)
}

// RoomService orchestrates validation and persistence for room operations.
type RoomService struct {
	rooms  RoomRepository
	events RoomOccupancy
	logger *slog.Logger
}

// NewRoomService constructs a room service with the provided dependencies.
// events may be nil, in which case room removal is never blocked.
func NewRoomService(rooms RoomRepository, events RoomOccupancy) *RoomService {
	return NewRoomServiceWithLogger(rooms, events, nil)
}

// NewRoomServiceWithLogger constructs a room service with a specified logger.
func NewRoomServiceWithLogger(rooms RoomRepository, events RoomOccupancy, logger *slog.Logger) *RoomService {
	return &RoomService{rooms: rooms, events: events, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// RegisterRoom validates input, allocates an id, and persists a new room.
func (s *RoomService) RegisterRoom(ctx context.Context, name string, capacity int) (room Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}
	if s.rooms == nil {
		err = fmt.Errorf("room repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "RegisterRoom")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to register room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room registered")
	}()

	name = strings.TrimSpace(name)
	if name == "" {
		err = ErrEmptyName
		return
	}
	if capacity <= 0 {
		err = ErrInvalidCapacity
		return
	}

	id, err := s.rooms.NextRoomID(ctx)
	if err != nil {
		return
	}

	candidate, err := NewRoom(id, name, capacity)
	if err != nil {
		err = fmt.Errorf("construct room: %w", err)
		return
	}

	room, err = s.rooms.AddRoom(ctx, candidate)
	return
}

// GetRoom returns the room with the given id.
func (s *RoomService) GetRoom(ctx context.Context, id int64) (Room, error) {
	if s == nil {
		return Room{}, fmt.Errorf("RoomService is nil")
	}
	if s.rooms == nil {
		return Room{}, fmt.Errorf("room repository not configured")
	}

	room, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return Room{}, mapRepoError(err, ErrRoomNotFound)
	}
	return room, nil
}

// ListRooms returns every registered room ordered by id ascending.
func (s *RoomService) ListRooms(ctx context.Context) ([]Room, error) {
	if s == nil {
		return nil, fmt.Errorf("RoomService is nil")
	}
	if s.rooms == nil {
		return nil, fmt.Errorf("room repository not configured")
	}

	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

// RemoveRoom deletes a room by id. Removal is blocked while any event still
// references the room.
func (s *RoomService) RemoveRoom(ctx context.Context, id int64) (err error) {
	if s == nil {
		return fmt.Errorf("RoomService is nil")
	}
	if s.rooms == nil {
		return fmt.Errorf("room repository not configured")
	}

	logger := s.loggerWith(ctx, "RemoveRoom", "room_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to remove room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "room removed")
	}()

	if s.events != nil {
		var occupying []Event
		occupying, err = s.events.ListEventsByRoom(ctx, id)
		if err != nil {
			return
		}
		if len(occupying) > 0 {
			err = fmt.Errorf("%d event(s) still scheduled: %w", len(occupying), ErrRoomInUse)
			return
		}
	}

	removed, err := s.rooms.RemoveRoom(ctx, id)
	if err != nil {
		return
	}
	if !removed {
		err = ErrRoomNotFound
	}
	return
}

// mapRepoError translates storage-level sentinels into the domain sentinel
// for the entity being looked up, leaving other errors untouched.
func mapRepoError(err error, notFound error) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return notFound
	}
	return err
}
