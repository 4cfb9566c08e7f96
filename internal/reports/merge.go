package reports

import (
	"sort"

	"github.com/codr1/bedspace-reports/internal/dates"
)

// MergeRanges clips ranges to window and merges any that overlap or touch.
// The result is sorted and non-overlapping; merging it again returns it
// unchanged.
func MergeRanges(ranges []dates.Range, window dates.Range) []dates.Range {
	clipped := make([]dates.Range, 0, len(ranges))
	for _, r := range ranges {
		if c, ok := r.Clip(window); ok {
			clipped = append(clipped, c)
		}
	}
	sort.Slice(clipped, func(i, j int) bool {
		if !clipped[i].Start.Equal(clipped[j].Start) {
			return clipped[i].Start.Before(clipped[j].Start)
		}
		return clipped[i].End.Before(clipped[j].End)
	})

	var merged []dates.Range
	for _, r := range clipped {
		last := len(merged) - 1
		if last >= 0 && !r.Start.After(dates.AddDays(merged[last].End, 1)) {
			merged[last].End = dates.Max(merged[last].End, r.End)
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// FindGaps returns the maximal ranges inside window ∩ active that no
// unavailable range covers.
func FindGaps(unavailable []dates.Range, window, active dates.Range) []dates.Range {
	effective, ok := window.Clip(active)
	if !ok {
		return nil
	}

	var gaps []dates.Range
	cursor := effective.Start
	for _, busy := range MergeRanges(unavailable, effective) {
		if busy.Start.After(cursor) {
			gaps = append(gaps, dates.Range{Start: cursor, End: dates.AddDays(busy.Start, -1)})
		}
		cursor = dates.Max(cursor, dates.AddDays(busy.End, 1))
	}
	if !cursor.After(effective.End) {
		gaps = append(gaps, dates.Range{Start: cursor, End: effective.End})
	}
	return gaps
}
