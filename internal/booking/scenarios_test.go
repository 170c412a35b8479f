package booking_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/roombooking/internal/booking"
	"github.com/example/roombooking/internal/persistence/memory"
)

func TestScenario_ConflictInSameRoom(t *testing.T) {
	ctx := context.Background()
	c := memory.NewContainer()

	room, err := c.Rooms.RegisterRoom(ctx, "Sala 1", 5)
	if err != nil {
		t.Fatalf("RegisterRoom: %v", err)
	}
	if room.ID != 1 {
		t.Fatalf("first room id = %d, want 1", room.ID)
	}

	start, _ := booking.ParseTime("2025-10-31 14:30")
	end, _ := booking.ParseTime("2025-10-31 15:30")
	event, err := c.Events.Schedule(ctx, booking.ScheduleEventParams{
		RoomID: room.ID, Title: "Reunião", Start: start, End: end,
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if event.ID != 1 {
		t.Fatalf("first event id = %d, want 1", event.ID)
	}

	overlapStart, _ := booking.ParseTime("2025-10-31 14:45")
	overlapEnd, _ := booking.ParseTime("2025-10-31 15:15")
	_, err = c.Events.Schedule(ctx, booking.ScheduleEventParams{
		RoomID: room.ID, Title: "Encaixe", Start: overlapStart, End: overlapEnd,
	})
	if !errors.Is(err, booking.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}

	events, err := c.Events.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("store holds %d events after the rejected booking, want 1", len(events))
	}
}

func TestScenario_SchedulingWithoutRooms(t *testing.T) {
	ctx := context.Background()
	c := memory.NewContainer()

	start, _ := booking.ParseTime("2025-10-31 10:00")
	end, _ := booking.ParseTime("2025-10-31 11:00")
	_, err := c.Events.Schedule(ctx, booking.ScheduleEventParams{
		RoomID: 1, Title: "Reunião", Start: start, End: end,
	})
	if !errors.Is(err, booking.ErrRoomNotFound) {
		t.Fatalf("error = %v, want ErrRoomNotFound", err)
	}
}

func TestScenario_MovingEventIntoOccupiedRoom(t *testing.T) {
	ctx := context.Background()
	c := memory.NewContainer()

	for _, name := range []string{"Sala 1", "Sala 2"} {
		if _, err := c.Rooms.RegisterRoom(ctx, name, 5); err != nil {
			t.Fatalf("RegisterRoom %s: %v", name, err)
		}
	}

	start, _ := booking.ParseTime("2025-10-31 10:00")
	end, _ := booking.ParseTime("2025-10-31 11:00")
	first, err := c.Events.Schedule(ctx, booking.ScheduleEventParams{
		RoomID: 1, Title: "Reunião", Start: start, End: end,
	})
	if err != nil {
		t.Fatalf("Schedule in room 1: %v", err)
	}
	if _, err := c.Events.Schedule(ctx, booking.ScheduleEventParams{
		RoomID: 2, Title: "Paralela", Start: start, End: end,
	}); err != nil {
		t.Fatalf("Schedule in room 2: %v", err)
	}

	targetRoom := int64(2)
	_, err = c.Events.Update(ctx, first.ID, booking.UpdateEventParams{RoomID: &targetRoom})
	if !errors.Is(err, booking.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}
}

func TestScenario_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := memory.NewContainer()

	if _, err := c.Rooms.RegisterRoom(ctx, "Sala 1", 5); err != nil {
		t.Fatalf("RegisterRoom: %v", err)
	}

	start, _ := booking.ParseTime("2025-10-31 09:00")
	end, _ := booking.ParseTime("2025-10-31 10:00")
	event, err := c.Events.Schedule(ctx, booking.ScheduleEventParams{
		RoomID: 1, Title: "Reunião", Start: start, End: end,
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	events, err := c.Events.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 1 || events[0].ID != event.ID {
		t.Fatalf("listed events %+v do not surface the scheduled event", events)
	}

	if err := c.Events.Cancel(ctx, event.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	events, err = c.Events.List(ctx)
	if err != nil {
		t.Fatalf("List after cancel: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("cancelled event still listed: %+v", events)
	}
}

func TestScenario_RoomRemovalBlockedWhileOccupied(t *testing.T) {
	ctx := context.Background()
	c := memory.NewContainer()

	room, err := c.Rooms.RegisterRoom(ctx, "Sala 1", 5)
	if err != nil {
		t.Fatalf("RegisterRoom: %v", err)
	}

	start, _ := booking.ParseTime("2025-10-31 09:00")
	end, _ := booking.ParseTime("2025-10-31 10:00")
	event, err := c.Events.Schedule(ctx, booking.ScheduleEventParams{
		RoomID: room.ID, Title: "Reunião", Start: start, End: end,
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if err := c.Rooms.RemoveRoom(ctx, room.ID); !errors.Is(err, booking.ErrRoomInUse) {
		t.Fatalf("error = %v, want ErrRoomInUse", err)
	}

	if err := c.Events.Cancel(ctx, event.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := c.Rooms.RemoveRoom(ctx, room.ID); err != nil {
		t.Fatalf("RemoveRoom after cancellation: %v", err)
	}
}

func TestScenario_IdsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	c := memory.NewContainer()

	first, err := c.Rooms.RegisterRoom(ctx, "Sala 1", 5)
	if err != nil {
		t.Fatalf("RegisterRoom: %v", err)
	}
	if err := c.Rooms.RemoveRoom(ctx, first.ID); err != nil {
		t.Fatalf("RemoveRoom: %v", err)
	}

	second, err := c.Rooms.RegisterRoom(ctx, "Sala 2", 5)
	if err != nil {
		t.Fatalf("RegisterRoom: %v", err)
	}
	if second.ID != first.ID+1 {
		t.Fatalf("second room id = %d, want %d", second.ID, first.ID+1)
	}
}
