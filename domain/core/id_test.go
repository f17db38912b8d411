package core

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestNewRunIDUniqueness tests that NewRunID generates unique UUIDs
func TestNewRunIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[RunID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewRunID()
		if _, err := uuid.Parse(id.String()); err != nil {
			t.Fatalf("Generated invalid run ID %q: %v", id, err)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestTimestampIsUTC tests that timestamps encode in UTC
func TestTimestampIsUTC(t *testing.T) {
	local := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	ts := NewTimestamp(local)

	data, err := ts.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if got, want := string(data), `"2024-03-01T11:00:00Z"`; got != want {
		t.Errorf("MarshalJSON = %s, want %s", got, want)
	}
	if got, want := ts.String(), "2024-03-01T11:00:00Z"; got != want {
		t.Errorf("String = %s, want %s", got, want)
	}
}
