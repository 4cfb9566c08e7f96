package reports

import (
	"context"
	"sort"
	"strconv"

	"github.com/codr1/bedspace-reports/internal/dates"
)

// Occupancy holds the day counts of one bedspace inside a report window.
// Booking and void days are inclusive of both ends, and no day is counted
// in more than one of the booked, confirmed, provisional and void buckets.
type Occupancy struct {
	BookedDays              int     `json:"bookedDays"`
	ConfirmedDays           int     `json:"confirmedDays"`
	ProvisionalDays         int     `json:"provisionalDays"`
	ScheduledTurnaroundDays int     `json:"scheduledTurnaroundDays"`
	EffectiveTurnaroundDays int     `json:"effectiveTurnaroundDays"`
	VoidDays                int     `json:"voidDays"`
	TotalBookedDays         int     `json:"totalBookedDays"`
	OnlineDays              int     `json:"bedspaceOnlineDays"`
	OccupancyRate           float64 `json:"occupancyRate"`
}

// dayBucket is what a single online day counts towards. A higher bucket
// takes the day when bookings or voids overlap.
type dayBucket int

const (
	bucketFree dayBucket = iota
	bucketVoid
	bucketProvisional
	bucketConfirmed
	bucketBooked
)

func bookingBucket(booking Booking) dayBucket {
	switch {
	case booking.Arrived || booking.Departed:
		return bucketBooked
	case booking.Confirmed:
		return bucketConfirmed
	default:
		return bucketProvisional
	}
}

// CountOccupancy sums the day counts of one bedspace over window clipped to
// the bedspace's own life. Only the latest revision of each booking counts,
// and cancelled bookings and voids are ignored. Each online day lands in at
// most one of the booked, confirmed, provisional and void buckets: a
// changeover day shared by two bookings counts once, and a day covered by
// both a booking and a void counts as the booking. The occupancy rate is 0
// when the bedspace has no online days.
func CountOccupancy(bedspace Bedspace, bookings []Booking, voids []Void, window dates.Range, calendar WorkingDayCalendar) Occupancy {
	active, ok := bedspace.Active(window)
	if !ok {
		return Occupancy{}
	}

	occupancy := Occupancy{OnlineDays: active.Days()}
	days := make([]dayBucket, occupancy.OnlineDays)
	claim := func(r dates.Range, bucket dayBucket) {
		clipped, ok := r.Clip(active)
		if !ok {
			return
		}
		first := dates.DaysExclusive(active.Start, clipped.Start)
		for i := first; i < first+clipped.Days(); i++ {
			days[i] = max(days[i], bucket)
		}
	}

	for _, booking := range CountedBookings(bookings) {
		claim(booking.Stay(), bookingBucket(booking))

		turnaround, ok := booking.Turnaround(calendar)
		if !ok {
			continue
		}
		if clipped, ok := turnaround.Clip(active); ok {
			occupancy.ScheduledTurnaroundDays += calendar.WorkingDaysBetween(clipped.Start, clipped.End)
			occupancy.EffectiveTurnaroundDays += clipped.Days()
		}
	}

	for _, void := range voids {
		if !void.Cancelled {
			claim(void.Range(), bucketVoid)
		}
	}

	for _, bucket := range days {
		switch bucket {
		case bucketBooked:
			occupancy.BookedDays++
		case bucketConfirmed:
			occupancy.ConfirmedDays++
		case bucketProvisional:
			occupancy.ProvisionalDays++
		case bucketVoid:
			occupancy.VoidDays++
		}
	}

	occupancy.TotalBookedDays = occupancy.BookedDays + occupancy.ConfirmedDays + occupancy.ProvisionalDays
	if occupancy.OnlineDays > 0 {
		occupancy.OccupancyRate = float64(occupancy.TotalBookedDays) / float64(occupancy.OnlineDays)
	}
	return occupancy
}

type OccupancyRow struct {
	Location
	BedspaceStartDate string `json:"bedspaceStartDate"`
	BedspaceEndDate   string `json:"bedspaceEndDate,omitempty"`
	Occupancy

	bedspaceID int64
}

func (r OccupancyRow) Record() []string {
	return append(r.Location.record(),
		r.BedspaceStartDate,
		r.BedspaceEndDate,
		strconv.Itoa(r.BookedDays),
		strconv.Itoa(r.ConfirmedDays),
		strconv.Itoa(r.ProvisionalDays),
		strconv.Itoa(r.ScheduledTurnaroundDays),
		strconv.Itoa(r.EffectiveTurnaroundDays),
		strconv.Itoa(r.VoidDays),
		strconv.Itoa(r.TotalBookedDays),
		strconv.Itoa(r.OnlineDays),
		strconv.FormatFloat(r.OccupancyRate, 'f', 4, 64),
	)
}

// BedspaceOccupancyGenerator reports one occupancy row per bedspace.
type BedspaceOccupancyGenerator struct {
	calendar WorkingDayCalendar
}

func NewBedspaceOccupancyGenerator(calendar WorkingDayCalendar) *BedspaceOccupancyGenerator {
	return &BedspaceOccupancyGenerator{calendar: calendar}
}

func (g *BedspaceOccupancyGenerator) Type() ReportType {
	return ReportBedspaceOccupancy
}

func (g *BedspaceOccupancyGenerator) Columns() []string {
	return columns(
		"bedspace_start_date",
		"bedspace_end_date",
		"booked_days",
		"confirmed_days",
		"provisional_days",
		"scheduled_turnaround_days",
		"effective_turnaround_days",
		"void_days",
		"total_booked_days",
		"bedspace_online_days",
		"occupancy_rate",
	)
}

func (g *BedspaceOccupancyGenerator) Load(ctx context.Context, source Source, props Properties) (Dataset, error) {
	return loadBedspaceDataset(ctx, source, props.Window())
}

func (g *BedspaceOccupancyGenerator) Generate(ctx context.Context, data Dataset, props Properties) ([]Row, error) {
	window := props.Window()
	bookings := byBedspace(data.Bookings, func(b Booking) int64 { return b.BedspaceID })
	voids := byBedspace(data.Voids, func(v Void) int64 { return v.BedspaceID })

	occupancyRows := make([]OccupancyRow, 0, len(data.Bedspaces))
	for _, bedspace := range data.Bedspaces {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := bedspace.Active(window); !ok {
			continue
		}
		occupancyRows = append(occupancyRows, OccupancyRow{
			Location:          locationOf(bedspace),
			BedspaceStartDate: dates.Format(bedspace.StartDate),
			BedspaceEndDate:   formatOptionalDate(bedspace.EndDate),
			Occupancy:         CountOccupancy(bedspace, bookings[bedspace.ID], voids[bedspace.ID], window, g.calendar),
			bedspaceID:        bedspace.ID,
		})
	}

	sort.SliceStable(occupancyRows, func(i, j int) bool {
		if c := compareLocation(occupancyRows[i].Location, occupancyRows[j].Location); c != 0 {
			return c < 0
		}
		return occupancyRows[i].bedspaceID < occupancyRows[j].bedspaceID
	})

	rows := make([]Row, len(occupancyRows))
	for i := range occupancyRows {
		rows[i] = occupancyRows[i]
	}
	return rows, nil
}
