// source: reports.sql

package dbgen

import (
	"context"
	"database/sql"
)

const getProbationRegion = `-- name: GetProbationRegion :one
SELECT id, name FROM probation_regions WHERE id = ?
`

func (q *Queries) GetProbationRegion(ctx context.Context, id int64) (ProbationRegion, error) {
	row := q.db.QueryRowContext(ctx, getProbationRegion, id)
	var i ProbationRegion
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const listReportBedspaces = `-- name: ListReportBedspaces :many
SELECT
    b.id,
    b.name,
    b.start_date,
    b.end_date,
    p.id AS premises_id,
    p.name AS premises_name,
    p.service,
    u.id AS pdu_id,
    u.name AS pdu_name,
    r.id AS probation_region_id,
    r.name AS probation_region_name
FROM bedspaces b
JOIN premises p ON p.id = b.premises_id
JOIN probation_delivery_units u ON u.id = p.probation_delivery_unit_id
JOIN probation_regions r ON r.id = p.probation_region_id
WHERE b.start_date <= ?
  AND (b.end_date IS NULL OR b.end_date >= ?)
ORDER BY r.name, u.name, p.name, b.name, b.id
`

type ListReportBedspacesParams struct {
	EndDate   string `json:"end_date"`
	StartDate string `json:"start_date"`
}

type ListReportBedspacesRow struct {
	ID                  int64          `json:"id"`
	Name                string         `json:"name"`
	StartDate           string         `json:"start_date"`
	EndDate             sql.NullString `json:"end_date"`
	PremisesID          int64          `json:"premises_id"`
	PremisesName        string         `json:"premises_name"`
	Service             string         `json:"service"`
	PduID               int64          `json:"pdu_id"`
	PduName             string         `json:"pdu_name"`
	ProbationRegionID   int64          `json:"probation_region_id"`
	ProbationRegionName string         `json:"probation_region_name"`
}

func (q *Queries) ListReportBedspaces(ctx context.Context, arg ListReportBedspacesParams) ([]ListReportBedspacesRow, error) {
	rows, err := q.db.QueryContext(ctx, listReportBedspaces, arg.EndDate, arg.StartDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListReportBedspacesRow
	for rows.Next() {
		var i ListReportBedspacesRow
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.StartDate,
			&i.EndDate,
			&i.PremisesID,
			&i.PremisesName,
			&i.Service,
			&i.PduID,
			&i.PduName,
			&i.ProbationRegionID,
			&i.ProbationRegionName,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listReportBookings = `-- name: ListReportBookings :many
WITH revisions AS (
    SELECT
        bk.id,
        bk.bedspace_id,
        bk.crn,
        COALESCE(a.arrival_date, bk.arrival_date) AS arrival_date,
        COALESCE(d.departure_date, a.expected_departure_date, bk.departure_date) AS departure_date,
        COALESCE(d.created_at, bk.created_at) AS revision_created_at,
        a.id IS NOT NULL AS arrived,
        EXISTS (SELECT 1 FROM confirmations c WHERE c.booking_id = bk.id) AS confirmed,
        d.id IS NOT NULL AS departed,
        COALESCE(d.id, 0) AS departure_id,
        EXISTS (SELECT 1 FROM cancellations x WHERE x.booking_id = bk.id) AS cancelled,
        COALESCE((
            SELECT t.working_day_count FROM turnarounds t
            WHERE t.booking_id = bk.id
            ORDER BY t.created_at DESC, t.id DESC
            LIMIT 1
        ), 0) AS turnaround_days,
        o.is_authorised AS overstay_authorised,
        o.reason AS overstay_reason
    FROM bookings bk
    LEFT JOIN arrivals a ON a.id = (
        SELECT a2.id FROM arrivals a2
        WHERE a2.booking_id = bk.id
        ORDER BY a2.created_at DESC, a2.id DESC
        LIMIT 1
    )
    LEFT JOIN departures d ON d.booking_id = bk.id
    LEFT JOIN booking_overstays o ON o.id = (
        SELECT o2.id FROM booking_overstays o2
        WHERE o2.booking_id = bk.id
        ORDER BY o2.created_at DESC, o2.id DESC
        LIMIT 1
    )
)
SELECT
    id, bedspace_id, crn, arrival_date, departure_date, revision_created_at,
    arrived, confirmed, departed, cancelled, turnaround_days,
    overstay_authorised, overstay_reason
FROM revisions
WHERE id IN (
    SELECT id FROM revisions
    WHERE arrival_date <= ?
      AND departure_date >= ?
)
ORDER BY bedspace_id, arrival_date, id, revision_created_at, departure_id
`

type ListReportBookingsParams struct {
	ArrivalTo     string `json:"arrival_to"`
	DepartureFrom string `json:"departure_from"`
}

type ListReportBookingsRow struct {
	ID                 int64          `json:"id"`
	BedspaceID         int64          `json:"bedspace_id"`
	Crn                string         `json:"crn"`
	ArrivalDate        string         `json:"arrival_date"`
	DepartureDate      string         `json:"departure_date"`
	RevisionCreatedAt  string         `json:"revision_created_at"`
	Arrived            bool           `json:"arrived"`
	Confirmed          bool           `json:"confirmed"`
	Departed           bool           `json:"departed"`
	Cancelled          bool           `json:"cancelled"`
	TurnaroundDays     int64          `json:"turnaround_days"`
	OverstayAuthorised sql.NullBool   `json:"overstay_authorised"`
	OverstayReason     sql.NullString `json:"overstay_reason"`
}

func (q *Queries) ListReportBookings(ctx context.Context, arg ListReportBookingsParams) ([]ListReportBookingsRow, error) {
	rows, err := q.db.QueryContext(ctx, listReportBookings, arg.ArrivalTo, arg.DepartureFrom)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListReportBookingsRow
	for rows.Next() {
		var i ListReportBookingsRow
		if err := rows.Scan(
			&i.ID,
			&i.BedspaceID,
			&i.Crn,
			&i.ArrivalDate,
			&i.DepartureDate,
			&i.RevisionCreatedAt,
			&i.Arrived,
			&i.Confirmed,
			&i.Departed,
			&i.Cancelled,
			&i.TurnaroundDays,
			&i.OverstayAuthorised,
			&i.OverstayReason,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listReportVoids = `-- name: ListReportVoids :many
SELECT
    v.id,
    v.bedspace_id,
    v.start_date,
    v.end_date,
    v.reason,
    v.notes,
    EXISTS (SELECT 1 FROM void_cancellations vc WHERE vc.void_id = v.id) AS cancelled
FROM voids v
WHERE v.start_date <= ?
  AND v.end_date >= ?
ORDER BY v.bedspace_id, v.start_date, v.id
`

type ListReportVoidsParams struct {
	EndDate   string `json:"end_date"`
	StartDate string `json:"start_date"`
}

type ListReportVoidsRow struct {
	ID         int64  `json:"id"`
	BedspaceID int64  `json:"bedspace_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
	Notes      string `json:"notes"`
	Cancelled  bool   `json:"cancelled"`
}

func (q *Queries) ListReportVoids(ctx context.Context, arg ListReportVoidsParams) ([]ListReportVoidsRow, error) {
	rows, err := q.db.QueryContext(ctx, listReportVoids, arg.EndDate, arg.StartDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListReportVoidsRow
	for rows.Next() {
		var i ListReportVoidsRow
		if err := rows.Scan(
			&i.ID,
			&i.BedspaceID,
			&i.StartDate,
			&i.EndDate,
			&i.Reason,
			&i.Notes,
			&i.Cancelled,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listReportReferrals = `-- name: ListReportReferrals :many
SELECT
    rf.id,
    rf.crn,
    rf.service,
    rf.submitted_at,
    rf.accommodation_required_from,
    rf.decision,
    rf.decision_at,
    rf.rejection_reason,
    rf.booking_id,
    r.id AS probation_region_id,
    r.name AS probation_region_name,
    u.id AS pdu_id,
    u.name AS pdu_name
FROM referrals rf
JOIN probation_regions r ON r.id = rf.probation_region_id
LEFT JOIN probation_delivery_units u ON u.id = rf.probation_delivery_unit_id
WHERE substr(rf.submitted_at, 1, 10) >= ?
  AND substr(rf.submitted_at, 1, 10) <= ?
ORDER BY rf.submitted_at, rf.id
`

type ListReportReferralsParams struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ListReportReferralsRow struct {
	ID                        int64          `json:"id"`
	Crn                       string         `json:"crn"`
	Service                   string         `json:"service"`
	SubmittedAt               string         `json:"submitted_at"`
	AccommodationRequiredFrom sql.NullString `json:"accommodation_required_from"`
	Decision                  sql.NullString `json:"decision"`
	DecisionAt                sql.NullString `json:"decision_at"`
	RejectionReason           string         `json:"rejection_reason"`
	BookingID                 sql.NullInt64  `json:"booking_id"`
	ProbationRegionID         int64          `json:"probation_region_id"`
	ProbationRegionName       string         `json:"probation_region_name"`
	PduID                     sql.NullInt64  `json:"pdu_id"`
	PduName                   sql.NullString `json:"pdu_name"`
}

func (q *Queries) ListReportReferrals(ctx context.Context, arg ListReportReferralsParams) ([]ListReportReferralsRow, error) {
	rows, err := q.db.QueryContext(ctx, listReportReferrals, arg.StartDate, arg.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListReportReferralsRow
	for rows.Next() {
		var i ListReportReferralsRow
		if err := rows.Scan(
			&i.ID,
			&i.Crn,
			&i.Service,
			&i.SubmittedAt,
			&i.AccommodationRequiredFrom,
			&i.Decision,
			&i.DecisionAt,
			&i.RejectionReason,
			&i.BookingID,
			&i.ProbationRegionID,
			&i.ProbationRegionName,
			&i.PduID,
			&i.PduName,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
