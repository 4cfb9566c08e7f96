package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/codr1/bedspace-reports/internal/dates"
	dbgen "github.com/codr1/bedspace-reports/internal/db/generated"
)

// Source is the read-only query surface the generators load from.
// *dbgen.Queries satisfies it.
type Source interface {
	ListReportBedspaces(ctx context.Context, arg dbgen.ListReportBedspacesParams) ([]dbgen.ListReportBedspacesRow, error)
	ListReportBookings(ctx context.Context, arg dbgen.ListReportBookingsParams) ([]dbgen.ListReportBookingsRow, error)
	ListReportVoids(ctx context.Context, arg dbgen.ListReportVoidsParams) ([]dbgen.ListReportVoidsRow, error)
	ListReportReferrals(ctx context.Context, arg dbgen.ListReportReferralsParams) ([]dbgen.ListReportReferralsRow, error)
}

// turnaroundLookbackDays widens the booking query so a turnaround that began
// before the window is still seen.
const turnaroundLookbackDays = 60

const timestampLayout = "2006-01-02 15:04:05"

func loadBedspaces(ctx context.Context, source Source, window dates.Range) ([]Bedspace, error) {
	rows, err := source.ListReportBedspaces(ctx, dbgen.ListReportBedspacesParams{
		EndDate:   dates.Format(window.End),
		StartDate: dates.Format(window.Start),
	})
	if err != nil {
		return nil, fmt.Errorf("list bedspaces: %w", err)
	}

	bedspaces := make([]Bedspace, 0, len(rows))
	for _, row := range rows {
		start, err := dates.Parse(row.StartDate)
		if err != nil {
			return nil, fmt.Errorf("bedspace %d start date: %w", row.ID, err)
		}
		end, err := parseOptionalDate(row.EndDate.String, row.EndDate.Valid)
		if err != nil {
			return nil, fmt.Errorf("bedspace %d end date: %w", row.ID, err)
		}
		bedspaces = append(bedspaces, Bedspace{
			ID:           row.ID,
			Name:         row.Name,
			StartDate:    start,
			EndDate:      end,
			PremisesID:   row.PremisesID,
			PremisesName: row.PremisesName,
			Service:      row.Service,
			PDUID:        row.PduID,
			PDUName:      row.PduName,
			RegionID:     row.ProbationRegionID,
			RegionName:   row.ProbationRegionName,
		})
	}
	return bedspaces, nil
}

// loadBookings returns every revision of the bookings that touch window,
// looking back far enough to catch turnarounds running into it.
func loadBookings(ctx context.Context, source Source, window dates.Range, lookbackDays int) ([]Booking, error) {
	rows, err := source.ListReportBookings(ctx, dbgen.ListReportBookingsParams{
		ArrivalTo:     dates.Format(window.End),
		DepartureFrom: dates.Format(dates.AddDays(window.Start, -lookbackDays)),
	})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	bookings := make([]Booking, 0, len(rows))
	for _, row := range rows {
		arrival, err := dates.Parse(row.ArrivalDate)
		if err != nil {
			return nil, fmt.Errorf("booking %d arrival date: %w", row.ID, err)
		}
		departure, err := dates.Parse(row.DepartureDate)
		if err != nil {
			return nil, fmt.Errorf("booking %d departure date: %w", row.ID, err)
		}
		createdAt, err := parseTimestamp(row.RevisionCreatedAt)
		if err != nil {
			return nil, fmt.Errorf("booking %d revision created at: %w", row.ID, err)
		}

		booking := Booking{
			ID:                row.ID,
			BedspaceID:        row.BedspaceID,
			CRN:               row.Crn,
			ArrivalDate:       arrival,
			DepartureDate:     departure,
			RevisionCreatedAt: createdAt,
			Arrived:           row.Arrived,
			Confirmed:         row.Confirmed,
			Departed:          row.Departed,
			Cancelled:         row.Cancelled,
			TurnaroundDays:    int(row.TurnaroundDays),
		}
		if row.OverstayAuthorised.Valid {
			booking.Overstay = &Overstay{
				Authorised: row.OverstayAuthorised.Bool,
				Reason:     row.OverstayReason.String,
			}
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func loadVoids(ctx context.Context, source Source, window dates.Range) ([]Void, error) {
	rows, err := source.ListReportVoids(ctx, dbgen.ListReportVoidsParams{
		EndDate:   dates.Format(window.End),
		StartDate: dates.Format(window.Start),
	})
	if err != nil {
		return nil, fmt.Errorf("list voids: %w", err)
	}

	voids := make([]Void, 0, len(rows))
	for _, row := range rows {
		start, err := dates.Parse(row.StartDate)
		if err != nil {
			return nil, fmt.Errorf("void %d start date: %w", row.ID, err)
		}
		end, err := dates.Parse(row.EndDate)
		if err != nil {
			return nil, fmt.Errorf("void %d end date: %w", row.ID, err)
		}
		voids = append(voids, Void{
			ID:         row.ID,
			BedspaceID: row.BedspaceID,
			StartDate:  start,
			EndDate:    end,
			Reason:     row.Reason,
			Notes:      row.Notes,
			Cancelled:  row.Cancelled,
		})
	}
	return voids, nil
}

func loadReferrals(ctx context.Context, source Source, window dates.Range) ([]Referral, error) {
	rows, err := source.ListReportReferrals(ctx, dbgen.ListReportReferralsParams{
		StartDate: dates.Format(window.Start),
		EndDate:   dates.Format(window.End),
	})
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}

	referrals := make([]Referral, 0, len(rows))
	for _, row := range rows {
		submitted, err := dates.Parse(row.SubmittedAt)
		if err != nil {
			return nil, fmt.Errorf("referral %d submitted at: %w", row.ID, err)
		}
		requiredFrom, err := parseOptionalDate(row.AccommodationRequiredFrom.String, row.AccommodationRequiredFrom.Valid)
		if err != nil {
			return nil, fmt.Errorf("referral %d accommodation required from: %w", row.ID, err)
		}
		decidedOn, err := parseOptionalDate(row.DecisionAt.String, row.DecisionAt.Valid)
		if err != nil {
			return nil, fmt.Errorf("referral %d decision at: %w", row.ID, err)
		}

		referral := Referral{
			ID:                        row.ID,
			CRN:                       row.Crn,
			Service:                   row.Service,
			SubmittedDate:             submitted,
			AccommodationRequiredFrom: requiredFrom,
			Decision:                  row.Decision.String,
			DecisionDate:              decidedOn,
			RejectionReason:           row.RejectionReason,
			RegionID:                  row.ProbationRegionID,
			RegionName:                row.ProbationRegionName,
			PDUName:                   row.PduName.String,
		}
		if row.BookingID.Valid {
			bookingID := row.BookingID.Int64
			referral.BookingID = &bookingID
		}
		referrals = append(referrals, referral)
	}
	return referrals, nil
}

// LatestRevisions keeps the most recently created revision of each booking,
// in the order bookings are first seen. Later rows win ties.
func LatestRevisions(bookings []Booking) []Booking {
	index := make(map[int64]int, len(bookings))
	var latest []Booking
	for _, booking := range bookings {
		i, seen := index[booking.ID]
		if !seen {
			index[booking.ID] = len(latest)
			latest = append(latest, booking)
			continue
		}
		if !booking.RevisionCreatedAt.Before(latest[i].RevisionCreatedAt) {
			latest[i] = booking
		}
	}
	return latest
}

// CountedBookings returns the latest revision of every booking that has not
// been cancelled.
func CountedBookings(bookings []Booking) []Booking {
	var counted []Booking
	for _, booking := range LatestRevisions(bookings) {
		if !booking.Cancelled {
			counted = append(counted, booking)
		}
	}
	return counted
}

func parseOptionalDate(value string, valid bool) (*time.Time, error) {
	if !valid || value == "" {
		return nil, nil
	}
	parsed, err := dates.Parse(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseTimestamp(value string) (time.Time, error) {
	if parsed, err := time.Parse(timestampLayout, value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), nil
	}
	return dates.Parse(value)
}

// byBedspace groups rows by bedspace id, keeping their order.
func byBedspace[T any](rows []T, bedspaceID func(T) int64) map[int64][]T {
	grouped := make(map[int64][]T)
	for _, row := range rows {
		id := bedspaceID(row)
		grouped[id] = append(grouped[id], row)
	}
	return grouped
}
