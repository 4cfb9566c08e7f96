package reports

import (
	"time"

	"github.com/codr1/bedspace-reports/internal/dates"
)

// Bedspace is a lettable unit together with the premises, PDU and region it
// reports under.
type Bedspace struct {
	ID           int64
	Name         string
	StartDate    time.Time
	EndDate      *time.Time
	PremisesID   int64
	PremisesName string
	Service      string
	PDUID        int64
	PDUName      string
	RegionID     int64
	RegionName   string
}

func (b Bedspace) Scope() Scope {
	return Scope{ProbationRegionID: b.RegionID, Service: b.Service}
}

// Active returns the part of window during which the bedspace is online.
func (b Bedspace) Active(window dates.Range) (dates.Range, bool) {
	end := window.End
	if b.EndDate != nil {
		end = *b.EndDate
	}
	return dates.Range{Start: b.StartDate, End: end}.Clip(window)
}

// Overstay is the latest overstay decision recorded against a booking.
type Overstay struct {
	Authorised bool
	Reason     string
}

// Booking is one revision of a booking. A booking with several departure
// records appears once per record.
type Booking struct {
	ID                int64
	BedspaceID        int64
	CRN               string
	ArrivalDate       time.Time
	DepartureDate     time.Time
	RevisionCreatedAt time.Time
	Arrived           bool
	Confirmed         bool
	Departed          bool
	Cancelled         bool
	TurnaroundDays    int
	Overstay          *Overstay
}

const (
	BookingStatusProvisional = "provisional"
	BookingStatusConfirmed   = "confirmed"
	BookingStatusArrived     = "arrived"
	BookingStatusDeparted    = "departed"
	BookingStatusCancelled   = "cancelled"
)

func (b Booking) Status() string {
	switch {
	case b.Cancelled:
		return BookingStatusCancelled
	case b.Departed:
		return BookingStatusDeparted
	case b.Arrived:
		return BookingStatusArrived
	case b.Confirmed:
		return BookingStatusConfirmed
	default:
		return BookingStatusProvisional
	}
}

// Stay is the closed range from arrival to departure day.
func (b Booking) Stay() dates.Range {
	return dates.Range{Start: b.ArrivalDate, End: b.DepartureDate}
}

// Turnaround is the range after departure in which the bedspace is still
// being prepared. The boolean is false when the booking has no turnaround.
func (b Booking) Turnaround(cal WorkingDayCalendar) (dates.Range, bool) {
	if b.TurnaroundDays <= 0 {
		return dates.Range{}, false
	}
	return dates.Range{
		Start: dates.AddDays(b.DepartureDate, 1),
		End:   cal.AddWorkingDays(b.DepartureDate, b.TurnaroundDays),
	}, true
}

// Unavailable is the stay extended to the end of any turnaround.
func (b Booking) Unavailable(cal WorkingDayCalendar) dates.Range {
	stay := b.Stay()
	if turnaround, ok := b.Turnaround(cal); ok {
		stay.End = dates.Max(stay.End, turnaround.End)
	}
	return stay
}

type Void struct {
	ID         int64
	BedspaceID int64
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Notes      string
	Cancelled  bool
}

func (v Void) Range() dates.Range {
	return dates.Range{Start: v.StartDate, End: v.EndDate}
}

type Referral struct {
	ID                        int64
	CRN                       string
	Service                   string
	SubmittedDate             time.Time
	AccommodationRequiredFrom *time.Time
	Decision                  string
	DecisionDate              *time.Time
	RejectionReason           string
	BookingID                 *int64
	RegionID                  int64
	RegionName                string
	PDUName                   string
}

func (r Referral) Scope() Scope {
	return Scope{ProbationRegionID: r.RegionID, Service: r.Service}
}

// Dataset holds every source row a generator needs for one run.
type Dataset struct {
	Bedspaces []Bedspace
	Bookings  []Booking
	Voids     []Void
	Referrals []Referral
}

// Filter keeps the bedspaces and referrals the filter matches, and the
// bookings and voids that belong to a kept bedspace.
func (d Dataset) Filter(filter Filter) Dataset {
	out := Dataset{
		Bedspaces: FilterRows(d.Bedspaces, filter),
		Referrals: FilterRows(d.Referrals, filter),
	}

	kept := make(map[int64]struct{}, len(out.Bedspaces))
	for _, bedspace := range out.Bedspaces {
		kept[bedspace.ID] = struct{}{}
	}
	for _, booking := range d.Bookings {
		if _, ok := kept[booking.BedspaceID]; ok {
			out.Bookings = append(out.Bookings, booking)
		}
	}
	for _, void := range d.Voids {
		if _, ok := kept[void.BedspaceID]; ok {
			out.Voids = append(out.Voids, void)
		}
	}
	return out
}
