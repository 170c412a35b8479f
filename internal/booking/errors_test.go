package booking

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrEmptyName, "empty_name"},
		{ErrInvalidCapacity, "invalid_capacity"},
		{ErrRoomNotFound, "room_not_found"},
		{ErrRoomInUse, "room_in_use"},
		{ErrEmptyTitle, "empty_title"},
		{ErrInvalidInterval, "invalid_interval"},
		{ErrConflict, "conflict"},
		{ErrEventNotFound, "event_not_found"},
		{errors.New("boom"), "unexpected"},
	}

	for _, tt := range tests {
		t.Run(tt.want+"_label", func(t *testing.T) {
			if got := ErrorKind(tt.err); got != tt.want {
				t.Fatalf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}

	t.Run("wrapped sentinels keep their kind", func(t *testing.T) {
		err := fmt.Errorf("event 7 occupies the interval: %w", ErrConflict)
		if got := ErrorKind(err); got != "conflict" {
			t.Fatalf("ErrorKind = %q, want %q", got, "conflict")
		}
	})
}
