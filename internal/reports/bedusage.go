package reports

import (
	"context"
	"sort"
	"strconv"

	"github.com/codr1/bedspace-reports/internal/dates"
)

const (
	UsageBooking    = "Booking"
	UsageTurnaround = "Turnaround"
	UsageVoid       = "Void"
)

type BedUsageRow struct {
	Location
	Type          string `json:"type"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	DurationDays  int    `json:"durationDays"`
	BookingStatus string `json:"bookingStatus,omitempty"`
	VoidReason    string `json:"voidReason,omitempty"`

	bedspaceID int64
}

func (r BedUsageRow) Record() []string {
	return append(r.Location.record(),
		r.Type,
		r.StartDate,
		r.EndDate,
		strconv.Itoa(r.DurationDays),
		r.BookingStatus,
		r.VoidReason,
	)
}

// BedUsageGenerator lists every booking, turnaround and void that uses a
// bedspace during the window, clipped to the window.
type BedUsageGenerator struct {
	calendar WorkingDayCalendar
}

func NewBedUsageGenerator(calendar WorkingDayCalendar) *BedUsageGenerator {
	return &BedUsageGenerator{calendar: calendar}
}

func (g *BedUsageGenerator) Type() ReportType {
	return ReportBedUsage
}

func (g *BedUsageGenerator) Columns() []string {
	return columns("type", "start_date", "end_date", "duration_days", "booking_status", "void_reason")
}

func (g *BedUsageGenerator) Load(ctx context.Context, source Source, props Properties) (Dataset, error) {
	return loadBedspaceDataset(ctx, source, props.Window())
}

func (g *BedUsageGenerator) Generate(ctx context.Context, data Dataset, props Properties) ([]Row, error) {
	window := props.Window()
	bookings := byBedspace(CountedBookings(data.Bookings), func(b Booking) int64 { return b.BedspaceID })
	voids := byBedspace(data.Voids, func(v Void) int64 { return v.BedspaceID })

	var usageRows []BedUsageRow
	for _, bedspace := range data.Bedspaces {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		active, ok := bedspace.Active(window)
		if !ok {
			continue
		}
		location := locationOf(bedspace)
		usage := func(kind string, r dates.Range) BedUsageRow {
			return BedUsageRow{
				Location:     location,
				Type:         kind,
				StartDate:    dates.Format(r.Start),
				EndDate:      dates.Format(r.End),
				DurationDays: r.Days(),
				bedspaceID:   bedspace.ID,
			}
		}

		for _, booking := range bookings[bedspace.ID] {
			if stay, ok := booking.Stay().Clip(active); ok {
				row := usage(UsageBooking, stay)
				row.BookingStatus = booking.Status()
				usageRows = append(usageRows, row)
			}
			if turnaround, ok := booking.Turnaround(g.calendar); ok {
				if clipped, ok := turnaround.Clip(active); ok {
					usageRows = append(usageRows, usage(UsageTurnaround, clipped))
				}
			}
		}
		for _, void := range voids[bedspace.ID] {
			if void.Cancelled {
				continue
			}
			if clipped, ok := void.Range().Clip(active); ok {
				row := usage(UsageVoid, clipped)
				row.VoidReason = void.Reason
				usageRows = append(usageRows, row)
			}
		}
	}

	sort.SliceStable(usageRows, func(i, j int) bool {
		a, b := usageRows[i], usageRows[j]
		if c := compareLocation(a.Location, b.Location); c != 0 {
			return c < 0
		}
		if a.bedspaceID != b.bedspaceID {
			return a.bedspaceID < b.bedspaceID
		}
		if a.StartDate != b.StartDate {
			return a.StartDate < b.StartDate
		}
		return a.Type < b.Type
	})

	rows := make([]Row, len(usageRows))
	for i := range usageRows {
		rows[i] = usageRows[i]
	}
	return rows, nil
}
