package booking

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/roombooking/internal/conflict"
)

// EventRepository captures the persistence operations needed by the service.
// ListEventsByRoom preserves the relative insertion order of events; the
// conflict search depends on it for deterministic first-match results.
type EventRepository interface {
	NextEventID(ctx context.Context) (int64, error)
	AddEvent(ctx context.Context, event Event) (Event, error)
	GetEvent(ctx context.Context, id int64) (Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	ListEventsByRoom(ctx context.Context, roomID int64) ([]Event, error)
	UpdateEvent(ctx context.Context, event Event) (Event, error)
	RemoveEvent(ctx context.Context, id int64) (bool, error)
}

// RoomCatalog exposes the room lookup needed for referential checks.
type RoomCatalog interface {
	GetRoom(ctx context.Context, id int64) (Room, error)
}

// ScheduleEventParams wraps the data required to schedule a new event.
type ScheduleEventParams struct {
	RoomID int64
	Title  string
	Start  time.Time
	End    time.Time
}

// UpdateEventParams carries the optional fields of a partial event update.
// A nil field keeps the current value.
type UpdateEventParams struct {
	Title  *string
	RoomID *int64
	Start  *time.Time
	End    *time.Time
}

// EventService orchestrates validation, conflict detection, and persistence
// for event operations.
type EventService struct {
	events EventRepository
	rooms  RoomCatalog
	logger *slog.Logger
}

// NewEventService constructs an event service with the provided dependencies.
func NewEventService(events EventRepository, rooms RoomCatalog) *EventService {
	return NewEventServiceWithLogger(events, rooms, nil)
}

// NewEventServiceWithLogger constructs an event service with a specified logger.
func NewEventServiceWithLogger(events EventRepository, rooms RoomCatalog, logger *slog.Logger) *EventService {
	return &EventService{events: events, rooms: rooms, logger: defaultLogger(logger)}
}

func (s *EventService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EventService", operation, attrs...)
}

// Schedule validates the request and persists a new event. The repository is
// left untouched when any check fails.
func (s *EventService) Schedule(ctx context.Context, params ScheduleEventParams) (event Event, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	if s.events == nil {
		err = fmt.Errorf("event repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "Schedule", "room_id", params.RoomID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to schedule event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("event_id", event.ID).InfoContext(ctx, "event scheduled")
	}()

	if err = s.ensureRoomExists(ctx, params.RoomID); err != nil {
		return
	}

	title := strings.TrimSpace(params.Title)
	if title == "" {
		err = ErrEmptyTitle
		return
	}
	if !conflict.ValidInterval(params.Start, params.End) {
		err = ErrInvalidInterval
		return
	}

	if err = s.ensureNoConflict(ctx, params.RoomID, params.Start, params.End, 0); err != nil {
		return
	}

	id, err := s.events.NextEventID(ctx)
	if err != nil {
		return
	}

	candidate, err := NewEvent(id, params.RoomID, title, params.Start, params.End)
	if err != nil {
		err = fmt.Errorf("construct event: %w", err)
		return
	}

	event, err = s.events.AddEvent(ctx, candidate)
	return
}

// Cancel removes an event by id.
func (s *EventService) Cancel(ctx context.Context, id int64) (err error) {
	if s == nil {
		return fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return fmt.Errorf("event repository not configured")
	}

	logger := s.loggerWith(ctx, "Cancel", "event_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to cancel event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "event cancelled")
	}()

	removed, err := s.events.RemoveEvent(ctx, id)
	if err != nil {
		return
	}
	if !removed {
		err = ErrEventNotFound
	}
	return
}

// Update applies a partial update to an existing event. Unspecified fields
// keep their current value; the resulting event is re-validated as a whole,
// excluding the event itself from the conflict search. Nothing is persisted
// unless every check passes.
func (s *EventService) Update(ctx context.Context, id int64, params UpdateEventParams) (event Event, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	if s.events == nil {
		err = fmt.Errorf("event repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "Update", "event_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "event updated")
	}()

	current, err := s.events.GetEvent(ctx, id)
	if err != nil {
		err = mapRepoError(err, ErrEventNotFound)
		return
	}

	title := current.Title
	if params.Title != nil {
		title = *params.Title
	}
	title = strings.TrimSpace(title)
	if title == "" {
		err = ErrEmptyTitle
		return
	}

	roomID := current.RoomID
	if params.RoomID != nil {
		roomID = *params.RoomID
	}
	if err = s.ensureRoomExists(ctx, roomID); err != nil {
		return
	}

	start := current.Start
	if params.Start != nil {
		start = *params.Start
	}
	end := current.End
	if params.End != nil {
		end = *params.End
	}
	if !conflict.ValidInterval(start, end) {
		err = ErrInvalidInterval
		return
	}

	if err = s.ensureNoConflict(ctx, roomID, start, end, current.ID); err != nil {
		return
	}

	updated, err := NewEvent(current.ID, roomID, title, start, end)
	if err != nil {
		err = fmt.Errorf("construct event: %w", err)
		return
	}

	event, err = s.events.UpdateEvent(ctx, updated)
	return
}

// List returns every event ordered ascending by the composite key
// (Start, RoomID, ID).
func (s *EventService) List(ctx context.Context) ([]Event, error) {
	if s == nil {
		return nil, fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return nil, fmt.Errorf("event repository not configured")
	}

	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		if events[i].RoomID != events[j].RoomID {
			return events[i].RoomID < events[j].RoomID
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

func (s *EventService) ensureRoomExists(ctx context.Context, roomID int64) error {
	if s.rooms == nil {
		return nil
	}
	if _, err := s.rooms.GetRoom(ctx, roomID); err != nil {
		return mapRepoError(err, ErrRoomNotFound)
	}
	return nil
}

func (s *EventService) ensureNoConflict(ctx context.Context, roomID int64, start, end time.Time, ignoreID int64) error {
	existing, err := s.events.ListEventsByRoom(ctx, roomID)
	if err != nil {
		return err
	}

	bookings := make([]conflict.Booking, 0, len(existing))
	for _, e := range existing {
		bookings = append(bookings, conflict.Booking{ID: e.ID, RoomID: e.RoomID, Start: e.Start, End: e.End})
	}

	if c := conflict.Find(bookings, roomID, start, end, ignoreID); c != nil {
		return fmt.Errorf("event %d occupies the interval: %w", c.ID, ErrConflict)
	}
	return nil
}
