package dates

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	got, err := Parse("2025-01-31")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !got.Equal(Date(2025, time.January, 31)) {
		t.Fatalf("got %v", got)
	}

	got, err = Parse("2025-02-03 14:22:01")
	if err != nil {
		t.Fatalf("parse timestamp: %v", err)
	}
	if !got.Equal(Date(2025, time.February, 3)) {
		t.Fatalf("got %v", got)
	}

	if _, err := Parse("31/01/2025"); err == nil {
		t.Fatal("expected error for non ISO date")
	}
	if _, err := Parse(""); err == nil {
		t.Fatal("expected error for empty date")
	}
}

func TestDayCounting(t *testing.T) {
	start := Date(2025, time.January, 5)
	end := Date(2025, time.January, 10)

	if got := DaysInclusive(start, end); got != 6 {
		t.Fatalf("inclusive: %d", got)
	}
	if got := DaysExclusive(start, end); got != 5 {
		t.Fatalf("exclusive: %d", got)
	}
	if got := DaysInclusive(end, start); got != 0 {
		t.Fatalf("inclusive reversed: %d", got)
	}
	if got := DaysExclusive(start, start); got != 0 {
		t.Fatalf("exclusive same day: %d", got)
	}
	if got := DaysInclusive(start, start); got != 1 {
		t.Fatalf("inclusive same day: %d", got)
	}
}

func TestDayCounting_AcrossDaylightSavingChange(t *testing.T) {
	start := Date(2025, time.March, 29)
	end := Date(2025, time.April, 1)
	if got := DaysInclusive(start, end); got != 4 {
		t.Fatalf("inclusive: %d", got)
	}
}

func TestRangeClip(t *testing.T) {
	window := NewRange(Date(2025, time.January, 1), Date(2025, time.January, 31))

	clipped, ok := NewRange(Date(2024, time.December, 20), Date(2025, time.January, 3)).Clip(window)
	if !ok {
		t.Fatal("expected overlap")
	}
	if clipped.String() != "2025-01-01 to 2025-01-03" {
		t.Fatalf("clipped: %s", clipped)
	}

	if _, ok := NewRange(Date(2025, time.February, 1), Date(2025, time.February, 2)).Clip(window); ok {
		t.Fatal("expected no overlap")
	}
}

func TestRangeOverlapsAndContains(t *testing.T) {
	a := NewRange(Date(2025, time.January, 1), Date(2025, time.January, 10))
	b := NewRange(Date(2025, time.January, 10), Date(2025, time.January, 12))
	c := NewRange(Date(2025, time.January, 11), Date(2025, time.January, 12))

	if !a.Overlaps(b) {
		t.Fatal("ranges sharing an end day overlap")
	}
	if a.Overlaps(c) {
		t.Fatal("adjacent ranges do not overlap")
	}
	if !a.Contains(Date(2025, time.January, 10)) {
		t.Fatal("end day is contained")
	}
	if a.Days() != 10 {
		t.Fatalf("days: %d", a.Days())
	}
}
