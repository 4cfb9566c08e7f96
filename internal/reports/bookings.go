package reports

import (
	"context"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/codr1/bedspace-reports/internal/dates"
)

// DefaultMaxStayDays is the longest stay that needs no overstay record.
const DefaultMaxStayDays = 84

type BookingRow struct {
	Location
	BookingID          int64   `json:"bookingId"`
	CRN                string  `json:"crn"`
	Status             string  `json:"status"`
	ArrivalDate        string  `json:"arrivalDate"`
	DepartureDate      string  `json:"departureDate"`
	LengthOfStayDays   int     `json:"lengthOfStayDays"`
	OverstayAuthorised *bool   `json:"overstayAuthorised"`
	OverstayReason     *string `json:"overstayReason"`
}

func (r BookingRow) Record() []string {
	return append(r.Location.record(),
		strconv.FormatInt(r.BookingID, 10),
		r.CRN,
		r.Status,
		r.ArrivalDate,
		r.DepartureDate,
		strconv.Itoa(r.LengthOfStayDays),
		formatOptionalBool(r.OverstayAuthorised),
		formatOptionalString(r.OverstayReason),
	)
}

// BookingsGenerator lists the latest revision of every booking overlapping the
// window, cancelled ones included. Length of stay counts nights, so the
// departure day is excluded.
type BookingsGenerator struct {
	maxStayDays int
}

func NewBookingsGenerator(maxStayDays int) *BookingsGenerator {
	if maxStayDays <= 0 {
		maxStayDays = DefaultMaxStayDays
	}
	return &BookingsGenerator{maxStayDays: maxStayDays}
}

func (g *BookingsGenerator) Type() ReportType {
	return ReportBookings
}

func (g *BookingsGenerator) Columns() []string {
	return columns(
		"booking_id",
		"crn",
		"status",
		"arrival_date",
		"departure_date",
		"length_of_stay_days",
		"overstay_authorised",
		"overstay_reason",
	)
}

func (g *BookingsGenerator) Load(ctx context.Context, source Source, props Properties) (Dataset, error) {
	window := props.Window()
	bedspaces, err := loadBedspaces(ctx, source, window)
	if err != nil {
		return Dataset{}, err
	}
	bookings, err := loadBookings(ctx, source, window, 0)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Bedspaces: bedspaces, Bookings: bookings}, nil
}

func (g *BookingsGenerator) Generate(ctx context.Context, data Dataset, props Properties) ([]Row, error) {
	window := props.Window()
	bedspaces := make(map[int64]Bedspace, len(data.Bedspaces))
	for _, bedspace := range data.Bedspaces {
		bedspaces[bedspace.ID] = bedspace
	}

	var bookingRows []BookingRow
	for _, booking := range LatestRevisions(data.Bookings) {
		bedspace, ok := bedspaces[booking.BedspaceID]
		if !ok || !booking.Stay().Overlaps(window) {
			continue
		}

		row := BookingRow{
			Location:         locationOf(bedspace),
			BookingID:        booking.ID,
			CRN:              booking.CRN,
			Status:           booking.Status(),
			ArrivalDate:      dates.Format(booking.ArrivalDate),
			DepartureDate:    dates.Format(booking.DepartureDate),
			LengthOfStayDays: dates.DaysExclusive(booking.ArrivalDate, booking.DepartureDate),
		}
		if booking.Overstay != nil {
			authorised, reason := booking.Overstay.Authorised, booking.Overstay.Reason
			row.OverstayAuthorised = &authorised
			row.OverstayReason = &reason
		} else if row.LengthOfStayDays > g.maxStayDays {
			log.Ctx(ctx).Warn().
				Int64("booking_id", booking.ID).
				Str("crn", booking.CRN).
				Int("length_of_stay_days", row.LengthOfStayDays).
				Int("max_stay_days", g.maxStayDays).
				Msg("Booking exceeds maximum stay without an overstay record")
		}
		bookingRows = append(bookingRows, row)
	}

	sort.SliceStable(bookingRows, func(i, j int) bool {
		a, b := bookingRows[i], bookingRows[j]
		if c := compareLocation(a.Location, b.Location); c != 0 {
			return c < 0
		}
		if a.ArrivalDate != b.ArrivalDate {
			return a.ArrivalDate < b.ArrivalDate
		}
		return a.BookingID < b.BookingID
	})

	rows := make([]Row, len(bookingRows))
	for i := range bookingRows {
		rows[i] = bookingRows[i]
	}
	return rows, nil
}
