// Package conflict holds the pure scheduling rules of the room-booking
// domain: interval validity, half-open interval overlap, and the linear
// conflict search the services run before persisting an event.
package conflict

import "time"

// Booking is the minimal view of a scheduled event the rules operate on.
type Booking struct {
	ID     int64
	RoomID int64
	Start  time.Time
	End    time.Time
}

// ValidInterval reports whether [start, end) is a usable interval: both
// timestamps are set and end is strictly after start.
func ValidInterval(start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return end.After(start)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any instant. Intervals touching only at a boundary do
// not overlap. An individually invalid interval never overlaps anything.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if !ValidInterval(aStart, aEnd) || !ValidInterval(bStart, bEnd) {
		return false
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Find returns the first booking in existing, in the given order, that is
// scheduled in roomID and overlaps [start, end). A booking whose ID equals
// ignoreID is skipped; pass 0 to skip none. Returns nil when the interval is
// conflict-free.
func Find(existing []Booking, roomID int64, start, end time.Time, ignoreID int64) *Booking {
	for i := range existing {
		b := existing[i]
		if b.RoomID != roomID {
			continue
		}
		if ignoreID != 0 && b.ID == ignoreID {
			continue
		}
		if Overlaps(start, end, b.Start, b.End) {
			return &b
		}
	}
	return nil
}
