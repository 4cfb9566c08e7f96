package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/codr1/bedspace-reports/internal/db"
)

// Fixtures inserts reporting data for one test. Each value owns its own
// sequence, so generated names and CRNs never repeat within a test and no
// state leaks between tests.
type Fixtures struct {
	t   *testing.T
	db  *db.DB
	seq int
}

func NewFixtures(t *testing.T, database *db.DB) *Fixtures {
	t.Helper()
	return &Fixtures{t: t, db: database}
}

// Premises identifies the region, PDU and premises created by Scaffold.
type Premises struct {
	RegionID   int64
	PDUID      int64
	PremisesID int64
}

type PremisesParams struct {
	RegionID int64
	PDUID    int64
	Name     string
	Service  string
}

type BedspaceParams struct {
	PremisesID int64
	Name       string
	StartDate  string
	EndDate    string // empty means still active
}

type BookingParams struct {
	BedspaceID    int64
	CRN           string
	ArrivalDate   string
	DepartureDate string
	CreatedAt     string
}

type VoidParams struct {
	BedspaceID int64
	StartDate  string
	EndDate    string
	Reason     string
}

type ReferralParams struct {
	RegionID                  int64
	PDUID                     int64
	CRN                       string
	Service                   string
	SubmittedAt               string
	AccommodationRequiredFrom string
	Decision                  string
	DecisionAt                string
	RejectionReason           string
	BookingID                 int64
}

// Next returns the next value of this fixture set's sequence.
func (f *Fixtures) Next() int {
	f.seq++
	return f.seq
}

// CRN returns a case reference number unique within this fixture set.
func (f *Fixtures) CRN() string {
	return fmt.Sprintf("X%06d", f.Next())
}

func (f *Fixtures) Region(name string) int64 {
	if name == "" {
		name = fmt.Sprintf("Region %d", f.Next())
	}
	return f.insert("INSERT INTO probation_regions (name) VALUES (?)", name)
}

func (f *Fixtures) PDU(regionID int64, name string) int64 {
	if name == "" {
		name = fmt.Sprintf("PDU %d", f.Next())
	}
	return f.insert("INSERT INTO probation_delivery_units (probation_region_id, name) VALUES (?, ?)", regionID, name)
}

func (f *Fixtures) Premises(params PremisesParams) int64 {
	if params.Name == "" {
		params.Name = fmt.Sprintf("Premises %d", f.Next())
	}
	if params.Service == "" {
		params.Service = "CAS3"
	}
	return f.insert(
		"INSERT INTO premises (probation_region_id, probation_delivery_unit_id, name, service) VALUES (?, ?, ?, ?)",
		params.RegionID, params.PDUID, params.Name, params.Service,
	)
}

// Scaffold creates a region, PDU and premises for the given service.
func (f *Fixtures) Scaffold(service string) Premises {
	regionID := f.Region("")
	pduID := f.PDU(regionID, "")
	premisesID := f.Premises(PremisesParams{RegionID: regionID, PDUID: pduID, Service: service})
	return Premises{RegionID: regionID, PDUID: pduID, PremisesID: premisesID}
}

func (f *Fixtures) Bedspace(params BedspaceParams) int64 {
	if params.Name == "" {
		params.Name = fmt.Sprintf("Room %d", f.Next())
	}
	return f.insert(
		"INSERT INTO bedspaces (premises_id, name, start_date, end_date) VALUES (?, ?, ?, ?)",
		params.PremisesID, params.Name, params.StartDate, nullString(params.EndDate),
	)
}

func (f *Fixtures) Booking(params BookingParams) int64 {
	if params.CRN == "" {
		params.CRN = f.CRN()
	}
	if params.CreatedAt == "" {
		return f.insert(
			"INSERT INTO bookings (bedspace_id, crn, arrival_date, departure_date) VALUES (?, ?, ?, ?)",
			params.BedspaceID, params.CRN, params.ArrivalDate, params.DepartureDate,
		)
	}
	return f.insert(
		"INSERT INTO bookings (bedspace_id, crn, arrival_date, departure_date, created_at) VALUES (?, ?, ?, ?, ?)",
		params.BedspaceID, params.CRN, params.ArrivalDate, params.DepartureDate, params.CreatedAt,
	)
}

func (f *Fixtures) Arrival(bookingID int64, arrivalDate, expectedDepartureDate string) int64 {
	return f.insert(
		"INSERT INTO arrivals (booking_id, arrival_date, expected_departure_date) VALUES (?, ?, ?)",
		bookingID, arrivalDate, expectedDepartureDate,
	)
}

func (f *Fixtures) Confirmation(bookingID int64, confirmedAt string) int64 {
	return f.insert("INSERT INTO confirmations (booking_id, confirmed_at) VALUES (?, ?)", bookingID, confirmedAt)
}

func (f *Fixtures) Departure(bookingID int64, departureDate, createdAt string) int64 {
	return f.insert(
		"INSERT INTO departures (booking_id, departure_date, created_at) VALUES (?, ?, ?)",
		bookingID, departureDate, createdAt,
	)
}

func (f *Fixtures) Cancellation(bookingID int64, cancelledOn string) int64 {
	return f.insert("INSERT INTO cancellations (booking_id, cancelled_on) VALUES (?, ?)", bookingID, cancelledOn)
}

func (f *Fixtures) Turnaround(bookingID int64, workingDays int) int64 {
	return f.insert("INSERT INTO turnarounds (booking_id, working_day_count) VALUES (?, ?)", bookingID, workingDays)
}

func (f *Fixtures) Overstay(bookingID int64, authorised bool, reason string) int64 {
	return f.insert(
		"INSERT INTO booking_overstays (booking_id, is_authorised, reason) VALUES (?, ?, ?)",
		bookingID, authorised, reason,
	)
}

func (f *Fixtures) Void(params VoidParams) int64 {
	if params.Reason == "" {
		params.Reason = "Maintenance"
	}
	return f.insert(
		"INSERT INTO voids (bedspace_id, start_date, end_date, reason) VALUES (?, ?, ?, ?)",
		params.BedspaceID, params.StartDate, params.EndDate, params.Reason,
	)
}

func (f *Fixtures) CancelVoid(voidID int64) int64 {
	return f.insert("INSERT INTO void_cancellations (void_id) VALUES (?)", voidID)
}

func (f *Fixtures) Referral(params ReferralParams) int64 {
	if params.CRN == "" {
		params.CRN = f.CRN()
	}
	if params.Service == "" {
		params.Service = "CAS3"
	}
	var pduID, bookingID sql.NullInt64
	if params.PDUID != 0 {
		pduID = sql.NullInt64{Int64: params.PDUID, Valid: true}
	}
	if params.BookingID != 0 {
		bookingID = sql.NullInt64{Int64: params.BookingID, Valid: true}
	}
	return f.insert(
		`INSERT INTO referrals (
			crn, probation_region_id, probation_delivery_unit_id, service, submitted_at,
			accommodation_required_from, decision, decision_at, rejection_reason, booking_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		params.CRN, params.RegionID, pduID, params.Service, params.SubmittedAt,
		nullString(params.AccommodationRequiredFrom), nullString(params.Decision),
		nullString(params.DecisionAt), params.RejectionReason, bookingID,
	)
}

func (f *Fixtures) BankHoliday(division, date, title string) {
	f.t.Helper()
	if _, err := f.db.ExecContext(context.Background(),
		"INSERT INTO bank_holidays (division, holiday_date, title) VALUES (?, ?, ?)",
		division, date, title,
	); err != nil {
		f.t.Fatalf("insert bank holiday: %v", err)
	}
}

func (f *Fixtures) insert(query string, args ...any) int64 {
	f.t.Helper()
	result, err := f.db.ExecContext(context.Background(), query, args...)
	if err != nil {
		f.t.Fatalf("insert fixture: %v\n%s", err, query)
	}
	id, err := result.LastInsertId()
	if err != nil {
		f.t.Fatalf("fixture id: %v", err)
	}
	return id
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
