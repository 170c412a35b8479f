package booking

import "log/slog"

// Container bundles the wired services over a pair of repositories. Callers
// build one per composition root; there is no process-wide instance.
type Container struct {
	Rooms  *RoomService
	Events *EventService
}

// NewContainer wires both services over the given repositories. The room
// service consults the event repository so that occupied rooms cannot be
// removed, and the event service consults the room repository for
// referential checks.
func NewContainer(rooms RoomRepository, events EventRepository, logger *slog.Logger) *Container {
	return &Container{
		Rooms:  NewRoomServiceWithLogger(rooms, events, logger),
		Events: NewEventServiceWithLogger(events, rooms, logger),
	}
}
