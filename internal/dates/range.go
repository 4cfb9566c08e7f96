package dates

import (
	"fmt"
	"time"
)

// Range is a closed interval of calendar dates.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange builds a range from two dates.
func NewRange(start, end time.Time) Range {
	return Range{Start: Truncate(start), End: Truncate(end)}
}

// Valid reports whether the range contains at least one day.
func (r Range) Valid() bool {
	return !r.End.Before(r.Start)
}

// Days counts the days in the range, inclusive of both ends.
func (r Range) Days() int {
	return DaysInclusive(r.Start, r.End)
}

// Contains reports whether date falls inside the range.
func (r Range) Contains(date time.Time) bool {
	return !date.Before(r.Start) && !date.After(r.End)
}

// Overlaps reports whether the two ranges share at least one day.
func (r Range) Overlaps(other Range) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Clip intersects r with window. The boolean is false when they do not overlap.
func (r Range) Clip(window Range) (Range, bool) {
	clipped := Range{
		Start: Max(r.Start, window.Start),
		End:   Min(r.End, window.End),
	}
	if !clipped.Valid() {
		return Range{}, false
	}
	return clipped, true
}

func (r Range) String() string {
	return fmt.Sprintf("%s to %s", Format(r.Start), Format(r.End))
}
