package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/bedspace-reports/internal/bankholidays"
	"github.com/codr1/bedspace-reports/internal/dates"
	"github.com/codr1/bedspace-reports/internal/db"
	"github.com/codr1/bedspace-reports/internal/email"
	"github.com/codr1/bedspace-reports/internal/reports"
)

const (
	BankHolidayRefreshJobName = "bank_holiday_refresh"
	OccupancyDigestJobName    = "occupancy_digest"

	bankHolidayRefreshTimeout = 2 * time.Minute
	occupancyDigestTimeout    = 5 * time.Minute
)

// RegisterBankHolidayRefreshJob keeps the stored holidays for division current.
func RegisterBankHolidayRefreshJob(database *db.DB, fetcher bankholidays.Fetcher, division, cronExpr string) error {
	if database == nil {
		return fmt.Errorf("bank holiday refresh job requires database")
	}
	if fetcher == nil {
		return fmt.Errorf("bank holiday refresh job requires a fetcher")
	}

	_, err := AddJob(BankHolidayRefreshJobName, cronExpr, bankHolidayRefreshTimeout, func(ctx context.Context) error {
		_, err := bankholidays.Refresh(ctx, database, fetcher, division)
		return err
	})
	return err
}

// DigestJob is the configuration of the monthly occupancy digest.
type DigestJob struct {
	Reports           *reports.Service
	Sender            email.Sender
	Recipients        []string
	ProbationRegionID *int64
	Service           string
	Now               func() time.Time
}

// RegisterOccupancyDigestJob emails last month's occupancy summary on cronExpr.
func RegisterOccupancyDigestJob(job DigestJob, cronExpr string) error {
	if job.Reports == nil {
		return fmt.Errorf("occupancy digest job requires the report service")
	}
	if job.Sender == nil {
		return fmt.Errorf("occupancy digest job requires an email sender")
	}
	if len(job.Recipients) == 0 {
		return fmt.Errorf("occupancy digest job requires recipients")
	}

	_, err := AddJob(OccupancyDigestJobName, cronExpr, occupancyDigestTimeout, job.Run)
	return err
}

// Run produces and sends the digest for the calendar month before now.
func (j DigestJob) Run(ctx context.Context) error {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	period := PreviousMonth(now())

	report, err := j.Reports.Run(ctx, reports.Properties{
		Type:              reports.ReportBedspaceOccupancy,
		ProbationRegionID: j.ProbationRegionID,
		Service:           j.Service,
		StartDate:         period.Start,
		EndDate:           period.End,
	})
	if err != nil {
		return fmt.Errorf("occupancy digest report: %w", err)
	}

	premises, total := reports.SummarisePremises(report.Rows)
	digest := email.BuildOccupancyDigest(email.DigestDetails{
		Period:   period,
		Scope:    j.scope(),
		Premises: premises,
		Total:    total,
	})

	log.Ctx(ctx).Info().
		Str("period", period.String()).
		Int("premises", len(premises)).
		Int("recipients", len(j.Recipients)).
		Msg("Sending occupancy digest")

	return email.SendDigest(ctx, j.Sender, j.Recipients, digest)
}

func (j DigestJob) scope() string {
	var parts []string
	if j.ProbationRegionID != nil {
		parts = append(parts, "probation region "+strconv.FormatInt(*j.ProbationRegionID, 10))
	}
	if j.Service != "" {
		parts = append(parts, j.Service)
	}
	return strings.Join(parts, ", ")
}

// PreviousMonth is the closed range of the calendar month before now's
// month in UTC.
func PreviousMonth(now time.Time) dates.Range {
	now = now.UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return dates.NewRange(firstOfMonth.AddDate(0, -1, 0), firstOfMonth.AddDate(0, 0, -1))
}
