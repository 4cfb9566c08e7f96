package reports

import (
	"context"
	"sort"
	"strconv"

	"github.com/codr1/bedspace-reports/internal/dates"
)

type ReferralRow struct {
	ProbationRegion           string `json:"probationRegion"`
	PDU                       string `json:"pdu"`
	ReferralID                int64  `json:"referralId"`
	CRN                       string `json:"crn"`
	Service                   string `json:"service"`
	SubmittedDate             string `json:"submittedDate"`
	AccommodationRequiredFrom string `json:"accommodationRequiredFrom,omitempty"`
	Decision                  string `json:"decision,omitempty"`
	DecisionDate              string `json:"decisionDate,omitempty"`
	RejectionReason           string `json:"rejectionReason,omitempty"`
	BookingID                 *int64 `json:"bookingId"`
	DaysToDecision            *int64 `json:"daysToDecision"`
}

func (r ReferralRow) Record() []string {
	return []string{
		r.ProbationRegion,
		r.PDU,
		strconv.FormatInt(r.ReferralID, 10),
		r.CRN,
		r.Service,
		r.SubmittedDate,
		r.AccommodationRequiredFrom,
		r.Decision,
		r.DecisionDate,
		r.RejectionReason,
		formatOptionalInt(r.BookingID),
		formatOptionalInt(r.DaysToDecision),
	}
}

// ReferralsGenerator lists the referrals submitted during the window.
type ReferralsGenerator struct{}

func NewReferralsGenerator() *ReferralsGenerator {
	return &ReferralsGenerator{}
}

func (g *ReferralsGenerator) Type() ReportType {
	return ReportReferrals
}

func (g *ReferralsGenerator) Columns() []string {
	return []string{
		"probation_region",
		"pdu",
		"referral_id",
		"crn",
		"service",
		"submitted_date",
		"accommodation_required_from",
		"decision",
		"decision_date",
		"rejection_reason",
		"booking_id",
		"days_to_decision",
	}
}

func (g *ReferralsGenerator) Load(ctx context.Context, source Source, props Properties) (Dataset, error) {
	referrals, err := loadReferrals(ctx, source, props.Window())
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Referrals: referrals}, nil
}

func (g *ReferralsGenerator) Generate(ctx context.Context, data Dataset, props Properties) ([]Row, error) {
	window := props.Window()
	referrals := make([]Referral, 0, len(data.Referrals))
	for _, referral := range data.Referrals {
		if window.Contains(referral.SubmittedDate) {
			referrals = append(referrals, referral)
		}
	}
	sort.SliceStable(referrals, func(i, j int) bool {
		if !referrals[i].SubmittedDate.Equal(referrals[j].SubmittedDate) {
			return referrals[i].SubmittedDate.Before(referrals[j].SubmittedDate)
		}
		return referrals[i].ID < referrals[j].ID
	})

	rows := make([]Row, 0, len(referrals))
	for _, referral := range referrals {
		row := ReferralRow{
			ProbationRegion:           referral.RegionName,
			PDU:                       referral.PDUName,
			ReferralID:                referral.ID,
			CRN:                       referral.CRN,
			Service:                   referral.Service,
			SubmittedDate:             dates.Format(referral.SubmittedDate),
			AccommodationRequiredFrom: formatOptionalDate(referral.AccommodationRequiredFrom),
			Decision:                  referral.Decision,
			DecisionDate:              formatOptionalDate(referral.DecisionDate),
			RejectionReason:           referral.RejectionReason,
			BookingID:                 referral.BookingID,
		}
		if referral.DecisionDate != nil {
			days := int64(dates.DaysExclusive(referral.SubmittedDate, *referral.DecisionDate))
			row.DaysToDecision = &days
		}
		rows = append(rows, row)
	}
	return rows, nil
}
