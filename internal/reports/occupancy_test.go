package reports

import (
	"math"
	"testing"
	"time"

	"github.com/codr1/bedspace-reports/internal/calendar"
)

func testBedspace(t *testing.T, start, end string) Bedspace {
	t.Helper()
	bedspace := Bedspace{
		ID:           1,
		Name:         "Room 1",
		StartDate:    day(t, start),
		PremisesName: "Hope House",
		PDUName:      "Leeds",
		RegionName:   "Yorkshire",
		RegionID:     10,
		Service:      "CAS3",
	}
	if end != "" {
		endDate := day(t, end)
		bedspace.EndDate = &endDate
	}
	return bedspace
}

func testBooking(t *testing.T, id int64, arrival, departure string) Booking {
	t.Helper()
	return Booking{
		ID:                id,
		BedspaceID:        1,
		CRN:               "X000001",
		ArrivalDate:       day(t, arrival),
		DepartureDate:     day(t, departure),
		RevisionCreatedAt: day(t, "2024-12-01"),
	}
}

func testVoid(t *testing.T, start, end string) Void {
	t.Helper()
	return Void{ID: 1, BedspaceID: 1, StartDate: day(t, start), EndDate: day(t, end), Reason: "Repairs"}
}

func TestCountOccupancy_JanuaryExample(t *testing.T) {
	booking := testBooking(t, 1, "2025-01-05", "2025-01-10")
	booking.Arrived = true

	occupancy := CountOccupancy(
		testBedspace(t, "2025-01-01", "2025-01-31"),
		[]Booking{booking},
		[]Void{testVoid(t, "2025-01-20", "2025-01-22")},
		january(t),
		calendar.New(nil),
	)

	if occupancy.BookedDays != 6 {
		t.Fatalf("booked days = %d, want 6", occupancy.BookedDays)
	}
	if occupancy.VoidDays != 3 {
		t.Fatalf("void days = %d, want 3", occupancy.VoidDays)
	}
	if occupancy.OnlineDays != 31 {
		t.Fatalf("online days = %d, want 31", occupancy.OnlineDays)
	}
	if occupancy.TotalBookedDays != 6 {
		t.Fatalf("total booked days = %d, want 6", occupancy.TotalBookedDays)
	}
	if want := 6.0 / 31.0; math.Abs(occupancy.OccupancyRate-want) > 1e-9 {
		t.Fatalf("occupancy rate = %f, want %f", occupancy.OccupancyRate, want)
	}
}

func TestCountOccupancy_BucketsByBookingState(t *testing.T) {
	arrived := testBooking(t, 1, "2025-01-02", "2025-01-04")
	arrived.Arrived = true
	confirmed := testBooking(t, 2, "2025-01-10", "2025-01-11")
	confirmed.Confirmed = true
	provisional := testBooking(t, 3, "2025-01-20", "2025-01-20")
	cancelled := testBooking(t, 4, "2025-01-25", "2025-01-28")
	cancelled.Cancelled = true

	occupancy := CountOccupancy(
		testBedspace(t, "2024-01-01", ""),
		[]Booking{arrived, confirmed, provisional, cancelled},
		nil,
		january(t),
		calendar.New(nil),
	)

	if occupancy.BookedDays != 3 || occupancy.ConfirmedDays != 2 || occupancy.ProvisionalDays != 1 {
		t.Fatalf("buckets = %+v", occupancy)
	}
	if occupancy.TotalBookedDays != 6 {
		t.Fatalf("total booked days = %d, want 6", occupancy.TotalBookedDays)
	}
}

func TestCountOccupancy_ClipsToWindowAndBedspaceLife(t *testing.T) {
	booking := testBooking(t, 1, "2024-12-28", "2025-01-03")
	booking.Arrived = true

	occupancy := CountOccupancy(
		testBedspace(t, "2024-06-01", "2025-01-15"),
		[]Booking{booking},
		[]Void{testVoid(t, "2025-01-14", "2025-01-20")},
		january(t),
		calendar.New(nil),
	)

	if occupancy.OnlineDays != 15 {
		t.Fatalf("online days = %d, want 15", occupancy.OnlineDays)
	}
	if occupancy.BookedDays != 3 {
		t.Fatalf("booked days = %d, want 3", occupancy.BookedDays)
	}
	if occupancy.VoidDays != 2 {
		t.Fatalf("void days = %d, want 2", occupancy.VoidDays)
	}
}

func TestCountOccupancy_ZeroOnlineDaysRateIsZero(t *testing.T) {
	occupancy := CountOccupancy(
		testBedspace(t, "2025-02-01", ""),
		[]Booking{testBooking(t, 1, "2025-01-05", "2025-01-10")},
		nil,
		january(t),
		calendar.New(nil),
	)

	if occupancy.OnlineDays != 0 {
		t.Fatalf("online days = %d, want 0", occupancy.OnlineDays)
	}
	if occupancy.OccupancyRate != 0 || math.IsNaN(occupancy.OccupancyRate) || math.IsInf(occupancy.OccupancyRate, 0) {
		t.Fatalf("occupancy rate = %v, want 0", occupancy.OccupancyRate)
	}
}

func TestCountOccupancy_TurnaroundSkipsWeekendsAndBankHolidays(t *testing.T) {
	// Friday departure, two working days of turnaround.
	booking := testBooking(t, 1, "2025-01-06", "2025-01-10")
	booking.Arrived = true
	booking.TurnaroundDays = 2
	bedspace := testBedspace(t, "2024-01-01", "")

	plain := CountOccupancy(bedspace, []Booking{booking}, nil, january(t), calendar.New(nil))
	if plain.ScheduledTurnaroundDays != 2 || plain.EffectiveTurnaroundDays != 4 {
		t.Fatalf("turnaround = %d scheduled / %d effective, want 2 / 4",
			plain.ScheduledTurnaroundDays, plain.EffectiveTurnaroundDays)
	}

	withHoliday := CountOccupancy(bedspace, []Booking{booking}, nil, january(t),
		calendar.New([]time.Time{day(t, "2025-01-13")}))
	if withHoliday.ScheduledTurnaroundDays != 2 || withHoliday.EffectiveTurnaroundDays != 5 {
		t.Fatalf("turnaround = %d scheduled / %d effective, want 2 / 5",
			withHoliday.ScheduledTurnaroundDays, withHoliday.EffectiveTurnaroundDays)
	}
}

func TestCountOccupancy_TurnaroundClippedAtWindowEnd(t *testing.T) {
	booking := testBooking(t, 1, "2025-01-27", "2025-01-30")
	booking.Arrived = true
	booking.TurnaroundDays = 3

	occupancy := CountOccupancy(testBedspace(t, "2024-01-01", ""), []Booking{booking}, nil, january(t), calendar.New(nil))
	// Turnaround runs 31 Jan to 4 Feb; only Friday 31 Jan is in the window.
	if occupancy.ScheduledTurnaroundDays != 1 || occupancy.EffectiveTurnaroundDays != 1 {
		t.Fatalf("turnaround = %+v", occupancy)
	}
}

func TestCountOccupancy_LatestRevisionWins(t *testing.T) {
	original := testBooking(t, 7, "2025-01-05", "2025-01-20")
	original.Arrived = true
	amended := original
	amended.DepartureDate = day(t, "2025-01-12")
	amended.RevisionCreatedAt = day(t, "2025-01-12")
	amended.Departed = true

	occupancy := CountOccupancy(testBedspace(t, "2024-01-01", ""), []Booking{amended, original}, nil, january(t), calendar.New(nil))
	if occupancy.BookedDays != 8 {
		t.Fatalf("booked days = %d, want 8", occupancy.BookedDays)
	}
}

func TestCountOccupancy_Additivity(t *testing.T) {
	departed := func(b Booking) Booking {
		b.Arrived, b.Departed = true, true
		return b
	}
	arrived := func(b Booking) Booking {
		b.Arrived = true
		return b
	}
	confirmed := func(b Booking) Booking {
		b.Confirmed = true
		return b
	}

	scenarios := []struct {
		name     string
		bookings []Booking
		voids    []Void
	}{
		{
			name:     "empty",
			bookings: nil,
		},
		{
			name: "back to back",
			bookings: []Booking{
				testBooking(t, 1, "2024-12-25", "2025-01-09"),
				testBooking(t, 2, "2025-01-10", "2025-01-19"),
				testBooking(t, 3, "2025-01-25", "2025-02-10"),
			},
			voids: []Void{testVoid(t, "2025-01-20", "2025-01-24")},
		},
		{
			name: "same day changeover",
			bookings: []Booking{
				departed(testBooking(t, 1, "2025-01-01", "2025-01-16")),
				arrived(testBooking(t, 2, "2025-01-16", "2025-01-31")),
			},
		},
		{
			name: "fully booked with changeovers",
			bookings: []Booking{
				departed(testBooking(t, 1, "2024-12-20", "2025-01-10")),
				confirmed(testBooking(t, 2, "2025-01-10", "2025-01-20")),
				testBooking(t, 3, "2025-01-20", "2025-02-05"),
			},
			voids: []Void{testVoid(t, "2025-01-31", "2025-02-03")},
		},
		{
			name:     "void only",
			bookings: nil,
			voids:    []Void{testVoid(t, "2024-11-01", "2025-03-01")},
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			occupancy := CountOccupancy(testBedspace(t, "2025-01-01", ""), scenario.bookings, scenario.voids, january(t), calendar.New(nil))
			sum := occupancy.BookedDays + occupancy.ConfirmedDays + occupancy.ProvisionalDays + occupancy.VoidDays
			if sum > occupancy.OnlineDays {
				t.Fatalf("bucket sum %d exceeds online days %d (%+v)", sum, occupancy.OnlineDays, occupancy)
			}
			if occupancy.OccupancyRate > 1 {
				t.Fatalf("occupancy rate = %f", occupancy.OccupancyRate)
			}
		})
	}
}

func TestCountOccupancy_SameDayChangeoverCountsOnce(t *testing.T) {
	first := testBooking(t, 1, "2025-01-01", "2025-01-16")
	first.Arrived, first.Departed = true, true
	second := testBooking(t, 2, "2025-01-16", "2025-01-31")
	second.Arrived = true

	occupancy := CountOccupancy(testBedspace(t, "2024-01-01", ""), []Booking{first, second}, nil, january(t), calendar.New(nil))
	if occupancy.BookedDays != 31 || occupancy.OnlineDays != 31 {
		t.Fatalf("booked %d of %d online days, want 31 of 31", occupancy.BookedDays, occupancy.OnlineDays)
	}
	if occupancy.OccupancyRate != 1 {
		t.Fatalf("occupancy rate = %f, want 1", occupancy.OccupancyRate)
	}
}

func TestCountOccupancy_ChangeoverDayGoesToHigherState(t *testing.T) {
	leaving := testBooking(t, 1, "2025-01-01", "2025-01-10")
	leaving.Confirmed = true
	moving := testBooking(t, 2, "2025-01-10", "2025-01-12")
	moving.Arrived = true

	occupancy := CountOccupancy(testBedspace(t, "2024-01-01", ""), []Booking{leaving, moving}, nil, january(t), calendar.New(nil))
	// 10 Jan is shared; the arrived booking takes it.
	if occupancy.ConfirmedDays != 9 || occupancy.BookedDays != 3 {
		t.Fatalf("buckets = %+v, want confirmed 9 booked 3", occupancy)
	}
}

func TestCountOccupancy_BookingOverlappingVoid(t *testing.T) {
	booking := testBooking(t, 1, "2025-01-05", "2025-01-10")
	booking.Arrived = true

	occupancy := CountOccupancy(
		testBedspace(t, "2024-01-01", ""),
		[]Booking{booking},
		[]Void{testVoid(t, "2025-01-08", "2025-01-14")},
		january(t),
		calendar.New(nil),
	)
	// 8 to 10 Jan are booked, so the void keeps only 11 to 14 Jan.
	if occupancy.BookedDays != 6 || occupancy.VoidDays != 4 {
		t.Fatalf("buckets = %+v, want booked 6 void 4", occupancy)
	}
}
