package models

import (
	"testing"
	"time"
)

func TestEventID_StableAcrossRuns(t *testing.T) {
	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	id1 := EventID("Soccer", "Real Madrid", "Barcelona", start)
	id2 := EventID("Soccer", "Real Madrid", "Barcelona", start)

	if id1 != id2 {
		t.Errorf("EventID not deterministic: %s vs %s", id1, id2)
	}
	if len(id1) != 16 {
		t.Errorf("EventID length = %d, want 16", len(id1))
	}
}

func TestEventID_NormalizesNames(t *testing.T) {
	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	id1 := EventID("Soccer", "Girona FC", "UD Las Palmas", start)
	id2 := EventID("Soccer", "girona", "las palmas", start)

	if id1 != id2 {
		t.Errorf("EventID should normalize club suffixes:\n  Girona FC: %s\n  girona: %s", id1, id2)
	}
}

func TestEventID_DistinctInputsDistinctIDs(t *testing.T) {
	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name               string
		cat2, home2, away2 string
		start2             time.Time
	}{
		{"different category", "Basketball", "Real Madrid", "Barcelona", start},
		{"different home", "Soccer", "Sevilla", "Barcelona", start},
		{"different away", "Soccer", "Real Madrid", "Valencia", start},
		{"different start", "Soccer", "Real Madrid", "Barcelona", start.Add(time.Hour)},
	}

	base := EventID("Soccer", "Real Madrid", "Barcelona", start)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := EventID(tt.cat2, tt.home2, tt.away2, tt.start2)
			if other == base {
				t.Errorf("expected distinct id for %s", tt.name)
			}
		})
	}
}

func TestEventID_ZeroTime(t *testing.T) {
	id1 := EventID("Soccer", "A", "B", time.Time{})
	id2 := EventID("Soccer", "A", "B", time.Time{})
	if id1 != id2 {
		t.Errorf("zero-time ids differ: %s vs %s", id1, id2)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected EventStatus
	}{
		{"live", StatusLive},
		{"LIVE", StatusLive},
		{"finished", StatusFinished},
		{"upcoming", StatusUpcoming},
		{"", StatusUpcoming},
		{"scheduled", StatusUpcoming},
	}

	for _, tt := range tests {
		if got := ParseStatus(tt.input); got != tt.expected {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
