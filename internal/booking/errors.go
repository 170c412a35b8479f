package booking

import "errors"

// Sentinel errors classify every expected service failure. Callers branch on
// them with errors.Is; the services never panic for expected conditions.
var (
	// ErrEmptyName is returned when a room name is empty after trimming.
	ErrEmptyName = errors.New("booking: room name is empty")
	// ErrInvalidCapacity is returned when a room capacity is not positive.
	ErrInvalidCapacity = errors.New("booking: room capacity must be positive")
	// ErrRoomNotFound is returned when the referenced room does not exist.
	ErrRoomNotFound = errors.New("booking: room not found")
	// ErrRoomInUse is returned when removing a room that events still reference.
	ErrRoomInUse = errors.New("booking: room has scheduled events")
	// ErrEmptyTitle is returned when an event title is empty after trimming.
	ErrEmptyTitle = errors.New("booking: event title is empty")
	// ErrInvalidInterval is returned when an event interval is malformed or inverted.
	ErrInvalidInterval = errors.New("booking: event interval is invalid")
	// ErrConflict is returned when an interval overlaps an existing event in the same room.
	ErrConflict = errors.New("booking: schedule conflict")
	// ErrEventNotFound is returned when the referenced event does not exist.
	ErrEventNotFound = errors.New("booking: event not found")
)

// ErrorKind maps sentinel errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrEmptyName):
		return "empty_name"
	case errors.Is(err, ErrInvalidCapacity):
		return "invalid_capacity"
	case errors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, ErrRoomInUse):
		return "room_in_use"
	case errors.Is(err, ErrEmptyTitle):
		return "empty_title"
	case errors.Is(err, ErrInvalidInterval):
		return "invalid_interval"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrEventNotFound):
		return "event_not_found"
	}
	return "unexpected"
}
