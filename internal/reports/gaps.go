package reports

import (
	"context"
	"sort"
	"strconv"

	"github.com/codr1/bedspace-reports/internal/dates"
)

type GapRow struct {
	Location
	Gap      string `json:"gap"`
	GapDays  int    `json:"gapDays"`
	GapStart string `json:"gapStart"`
	GapEnd   string `json:"gapEnd"`

	bedspaceID int64
}

func (r GapRow) Record() []string {
	return append(r.Location.record(), r.Gap, strconv.Itoa(r.GapDays), r.GapStart, r.GapEnd)
}

// BookingGapGenerator reports the free periods of each bedspace. A bedspace is
// unavailable from arrival to the end of any turnaround and during voids.
type BookingGapGenerator struct {
	calendar WorkingDayCalendar
}

func NewBookingGapGenerator(calendar WorkingDayCalendar) *BookingGapGenerator {
	return &BookingGapGenerator{calendar: calendar}
}

func (g *BookingGapGenerator) Type() ReportType {
	return ReportBookingGap
}

func (g *BookingGapGenerator) Columns() []string {
	return columns("gap", "gap_days", "gap_start", "gap_end")
}

func (g *BookingGapGenerator) Load(ctx context.Context, source Source, props Properties) (Dataset, error) {
	return loadBedspaceDataset(ctx, source, props.Window())
}

func (g *BookingGapGenerator) Generate(ctx context.Context, data Dataset, props Properties) ([]Row, error) {
	window := props.Window()
	bookings := byBedspace(CountedBookings(data.Bookings), func(b Booking) int64 { return b.BedspaceID })
	voids := byBedspace(data.Voids, func(v Void) int64 { return v.BedspaceID })

	var gapRows []GapRow
	for _, bedspace := range data.Bedspaces {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		active, ok := bedspace.Active(window)
		if !ok {
			continue
		}

		for _, gap := range FindGaps(UnavailableRanges(bookings[bedspace.ID], voids[bedspace.ID], g.calendar), window, active) {
			gapRows = append(gapRows, GapRow{
				Location:   locationOf(bedspace),
				Gap:        gap.String(),
				GapDays:    gap.Days(),
				GapStart:   dates.Format(gap.Start),
				GapEnd:     dates.Format(gap.End),
				bedspaceID: bedspace.ID,
			})
		}
	}

	sort.SliceStable(gapRows, func(i, j int) bool {
		a, b := gapRows[i], gapRows[j]
		if c := compareLocation(a.Location, b.Location); c != 0 {
			return c < 0
		}
		if a.bedspaceID != b.bedspaceID {
			return a.bedspaceID < b.bedspaceID
		}
		return a.GapStart < b.GapStart
	})

	rows := make([]Row, len(gapRows))
	for i := range gapRows {
		rows[i] = gapRows[i]
	}
	return rows, nil
}

// UnavailableRanges returns the raw unavailable periods of one bedspace:
// each counted booking extended by its turnaround, and each live void.
func UnavailableRanges(bookings []Booking, voids []Void, calendar WorkingDayCalendar) []dates.Range {
	ranges := make([]dates.Range, 0, len(bookings)+len(voids))
	for _, booking := range bookings {
		if booking.Cancelled {
			continue
		}
		ranges = append(ranges, booking.Unavailable(calendar))
	}
	for _, void := range voids {
		if void.Cancelled {
			continue
		}
		ranges = append(ranges, void.Range())
	}
	return ranges
}

func loadBedspaceDataset(ctx context.Context, source Source, window dates.Range) (Dataset, error) {
	bedspaces, err := loadBedspaces(ctx, source, window)
	if err != nil {
		return Dataset{}, err
	}
	bookings, err := loadBookings(ctx, source, window, turnaroundLookbackDays)
	if err != nil {
		return Dataset{}, err
	}
	voids, err := loadVoids(ctx, source, window)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Bedspaces: bedspaces, Bookings: bookings, Voids: voids}, nil
}
