package core

import (
	"errors"
	"testing"
	"time"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
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

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
	if !MeasurementID("").IsEmpty() || !UserID("").IsEmpty() || !RecordID("").IsEmpty() {
		t.Error("Expected empty domain IDs to be empty")
	}
	if NewMeasurementID().IsEmpty() || NewRecordID().IsEmpty() {
		t.Error("Expected generated domain IDs to not be empty")
	}
}

// TestParseUserID tests user ID parsing
func TestParseUserID(t *testing.T) {
	tests := []struct {
		input    string
		expected UserID
		hasError bool
	}{
		{"550e8400-e29b-41d4-a716-446655440000", UserID("550e8400-e29b-41d4-a716-446655440000"), false},
		{"  550e8400-e29b-41d4-a716-446655440000 ", UserID("550e8400-e29b-41d4-a716-446655440000"), false},
		{"", "", true},
		{"   ", "", true},
		{"user-1", "", true},
	}

	for _, test := range tests {
		result, err := ParseUserID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if test.hasError && !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput for input '%s', got %v", test.input, err)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestParseMeasurementID tests measurement ID parsing
func TestParseMeasurementID(t *testing.T) {
	id := NewMeasurementID()
	parsed, err := ParseMeasurementID(id.String())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if parsed != id {
		t.Errorf("Expected %s, got %s", id, parsed)
	}

	if _, err := ParseMeasurementID(""); err == nil {
		t.Error("Expected error for empty measurement ID")
	}
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	clock := NewFixedClock(at)
	if !clock.Now().Equal(at) {
		t.Errorf("Expected %v, got %v", at, clock.Now())
	}
}

func TestWeeksBetween(t *testing.T) {
	a := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := WeeksBetween(a, a.Add(3*Week)); got != 3 {
		t.Errorf("Expected 3 weeks, got %f", got)
	}
	if got := DaysBetween(a, a.Add(36*time.Hour)); got != 1.5 {
		t.Errorf("Expected 1.5 days, got %f", got)
	}
}

func TestComputeHashOrderSensitive(t *testing.T) {
	h1 := ComputeHash([]string{"a", "b"})
	h2 := ComputeHash([]string{"b", "a"})
	h3 := ComputeHash([]string{"ab"})
	if h1 == h2 {
		t.Error("Expected different hashes for different part orders")
	}
	if h1 == h3 {
		t.Error("Expected part boundaries to affect the hash")
	}
	if h1 != ComputeHash([]string{"a", "b"}) {
		t.Error("Expected hash to be deterministic")
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{2.5, 3},
		{-2.5, -2},
		{57.49, 57},
		{0.5, 1},
	}
	for _, c := range cases {
		if got := RoundHalfUp(c.in); got != c.want {
			t.Errorf("RoundHalfUp(%v) = %d, want %d", c.in, got, c.want)
		}
	}
	if got := RoundTo(1.25, 1); got != 1.3 {
		t.Errorf("RoundTo(1.25, 1) = %v, want 1.3", got)
	}
	if got := Clamp(140, 0, 100); got != 100 {
		t.Errorf("Clamp = %v, want 100", got)
	}
	if got := ClampInt(-4, 0, 100); got != 0 {
		t.Errorf("ClampInt = %v, want 0", got)
	}
}
