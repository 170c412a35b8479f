// Package booking implements the room-booking domain: the Room and Event
// entities, the repository contracts the services depend on, and the
// use-case services that combine both with the scheduling rules.
package booking

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the reference text format for event timestamps. Front ends
// mimicking the reference behaviour parse and render times with it.
const TimeLayout = "2006-01-02 15:04"

// ParseTime parses a timestamp in the reference TimeLayout format.
func ParseTime(value string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", value, err)
	}
	return t, nil
}

// FormatTime renders a timestamp in the reference TimeLayout format.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// Room is a bookable physical space. Instances built through NewRoom are
// valid by construction and never mutated in place.
type Room struct {
	ID       int64
	Name     string
	Capacity int
}

// NewRoom validates and constructs a Room. The name is trimmed before
// validation. A validation failure here means a caller skipped its own
// pre-checks; services treat it as a programming error.
func NewRoom(id int64, name string, capacity int) (Room, error) {
	if id <= 0 {
		return Room{}, fmt.Errorf("room id must be a positive integer, got %d", id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Room{}, fmt.Errorf("room name must not be empty")
	}
	if capacity <= 0 {
		return Room{}, fmt.Errorf("room capacity must be a positive integer, got %d", capacity)
	}
	return Room{ID: id, Name: name, Capacity: capacity}, nil
}

// Event is a scheduled booking of a Room over the half-open interval
// [Start, End). The referential check against an existing Room happens in
// the services, not here.
type Event struct {
	ID     int64
	RoomID int64
	Title  string
	Start  time.Time
	End    time.Time
}

// NewEvent validates and constructs an Event. The title is trimmed before
// validation and End must be strictly after Start.
func NewEvent(id, roomID int64, title string, start, end time.Time) (Event, error) {
	if id <= 0 {
		return Event{}, fmt.Errorf("event id must be a positive integer, got %d", id)
	}
	if roomID <= 0 {
		return Event{}, fmt.Errorf("event room id must be a positive integer, got %d", roomID)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Event{}, fmt.Errorf("event title must not be empty")
	}
	if start.IsZero() || end.IsZero() {
		return Event{}, fmt.Errorf("event start and end must be set")
	}
	if !end.After(start) {
		return Event{}, fmt.Errorf("event end must be after start")
	}
	return Event{ID: id, RoomID: roomID, Title: title, Start: start, End: end}, nil
}
