package reports

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/codr1/bedspace-reports/internal/dates"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := dates.Parse(value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func span(t *testing.T, start, end string) dates.Range {
	t.Helper()
	return dates.Range{Start: day(t, start), End: day(t, end)}
}

func january(t *testing.T) dates.Range {
	return span(t, "2025-01-01", "2025-01-31")
}

func TestMergeRanges_MergesOverlappingAndTouching(t *testing.T) {
	merged := MergeRanges([]dates.Range{
		span(t, "2025-01-20", "2025-01-22"),
		span(t, "2025-01-05", "2025-01-10"),
		span(t, "2025-01-11", "2025-01-12"),
		span(t, "2025-01-08", "2025-01-09"),
	}, january(t))

	want := []dates.Range{
		span(t, "2025-01-05", "2025-01-12"),
		span(t, "2025-01-20", "2025-01-22"),
	}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("merged = %v, want %v", merged, want)
	}
}

func TestMergeRanges_ClipsToWindow(t *testing.T) {
	merged := MergeRanges([]dates.Range{
		span(t, "2024-12-20", "2025-01-03"),
		span(t, "2025-01-30", "2025-02-10"),
		span(t, "2025-03-01", "2025-03-05"),
	}, january(t))

	want := []dates.Range{
		span(t, "2025-01-01", "2025-01-03"),
		span(t, "2025-01-30", "2025-01-31"),
	}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("merged = %v, want %v", merged, want)
	}
}

func TestMergeRanges_Empty(t *testing.T) {
	if merged := MergeRanges(nil, january(t)); len(merged) != 0 {
		t.Fatalf("expected no ranges, got %v", merged)
	}
}

func randomRanges(rng *rand.Rand, origin time.Time, count int) []dates.Range {
	ranges := make([]dates.Range, 0, count)
	for i := 0; i < count; i++ {
		start := dates.AddDays(origin, rng.Intn(90))
		ranges = append(ranges, dates.Range{Start: start, End: dates.AddDays(start, rng.Intn(12))})
	}
	return ranges
}

func TestMergeRanges_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	window := span(t, "2025-01-01", "2025-02-28")
	origin := day(t, "2024-12-15")

	for trial := 0; trial < 200; trial++ {
		input := randomRanges(rng, origin, rng.Intn(8))
		merged := MergeRanges(input, window)

		if again := MergeRanges(merged, window); !reflect.DeepEqual(again, merged) {
			t.Fatalf("trial %d: merge not idempotent: %v then %v", trial, merged, again)
		}

		for i := 1; i < len(merged); i++ {
			if !merged[i].Start.After(dates.AddDays(merged[i-1].End, 1)) {
				t.Fatalf("trial %d: ranges %v and %v should have merged", trial, merged[i-1], merged[i])
			}
		}

		for _, r := range input {
			clipped, ok := r.Clip(window)
			if !ok {
				continue
			}
			for d := clipped.Start; !d.After(clipped.End); d = dates.AddDays(d, 1) {
				covering := 0
				for _, m := range merged {
					if m.Contains(d) {
						covering++
					}
				}
				if covering != 1 {
					t.Fatalf("trial %d: day %s covered %d times", trial, dates.Format(d), covering)
				}
			}
		}
	}
}

func TestFindGaps_JanuaryExample(t *testing.T) {
	gaps := FindGaps([]dates.Range{
		span(t, "2025-01-05", "2025-01-10"),
		span(t, "2025-01-20", "2025-01-22"),
	}, january(t), january(t))

	want := []dates.Range{
		span(t, "2025-01-01", "2025-01-04"),
		span(t, "2025-01-11", "2025-01-19"),
		span(t, "2025-01-23", "2025-01-31"),
	}
	if !reflect.DeepEqual(gaps, want) {
		t.Fatalf("gaps = %v, want %v", gaps, want)
	}
	for i, wantDays := range []int{4, 9, 9} {
		if gaps[i].Days() != wantDays {
			t.Fatalf("gap %d days = %d, want %d", i, gaps[i].Days(), wantDays)
		}
	}
}

func TestFindGaps_NoUnavailabilityIsWholeWindow(t *testing.T) {
	gaps := FindGaps(nil, january(t), january(t))
	if len(gaps) != 1 || !reflect.DeepEqual(gaps[0], january(t)) {
		t.Fatalf("gaps = %v", gaps)
	}
}

func TestFindGaps_FullyBooked(t *testing.T) {
	gaps := FindGaps([]dates.Range{span(t, "2024-12-01", "2025-02-01")}, january(t), january(t))
	if len(gaps) != 0 {
		t.Fatalf("expected no gaps, got %v", gaps)
	}
}

func TestFindGaps_BedspaceLifeClipsWindow(t *testing.T) {
	life := span(t, "2025-01-10", "2025-01-25")
	gaps := FindGaps([]dates.Range{span(t, "2025-01-05", "2025-01-12")}, january(t), life)

	want := []dates.Range{span(t, "2025-01-13", "2025-01-25")}
	if !reflect.DeepEqual(gaps, want) {
		t.Fatalf("gaps = %v, want %v", gaps, want)
	}

	if gaps := FindGaps(nil, january(t), span(t, "2025-03-01", "2025-03-31")); gaps != nil {
		t.Fatalf("expected nil for bedspace outside window, got %v", gaps)
	}
}

func TestFindGaps_ComplementsUnavailable(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	window := span(t, "2025-01-01", "2025-02-28")
	origin := day(t, "2024-12-15")

	for trial := 0; trial < 200; trial++ {
		unavailable := randomRanges(rng, origin, rng.Intn(8))
		merged := MergeRanges(unavailable, window)
		gaps := FindGaps(unavailable, window, window)

		for _, gap := range gaps {
			if !gap.Valid() {
				t.Fatalf("trial %d: empty gap %v", trial, gap)
			}
		}
		for d := window.Start; !d.After(window.End); d = dates.AddDays(d, 1) {
			inGap, inBusy := 0, 0
			for _, gap := range gaps {
				if gap.Contains(d) {
					inGap++
				}
			}
			for _, busy := range merged {
				if busy.Contains(d) {
					inBusy++
				}
			}
			if inGap+inBusy != 1 {
				t.Fatalf("trial %d: day %s in %d gaps and %d unavailable ranges", trial, dates.Format(d), inGap, inBusy)
			}
		}
	}
}
