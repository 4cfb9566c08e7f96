package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/bedspace-reports/internal/dates"
	"github.com/codr1/bedspace-reports/internal/reports"
)

const digestEmailTimeout = 10 * time.Second

type DigestEmail struct {
	Subject string
	Body    string
}

type DigestDetails struct {
	Period   dates.Range
	Scope    string
	Premises []reports.PremisesSummary
	Total    reports.PremisesSummary
}

// BuildOccupancyDigest renders the monthly occupancy summary as plain text.
func BuildOccupancyDigest(details DigestDetails) DigestEmail {
	month := details.Period.Start.Format("January 2006")
	scope := strings.TrimSpace(details.Scope)
	if scope == "" {
		scope = "All regions"
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Bedspace occupancy for %s (%s to %s)\n",
		month, dates.Format(details.Period.Start), dates.Format(details.Period.End))
	fmt.Fprintf(&body, "Scope: %s\n\n", scope)

	if len(details.Premises) == 0 {
		body.WriteString("No bedspaces were online in this period.\n")
	}
	for _, premises := range details.Premises {
		fmt.Fprintf(&body, "%s, %s, %s\n", premises.ProbationRegion, premises.PDU, premises.PremisesName)
		fmt.Fprintf(&body, "  Bedspaces: %d\n", premises.Bedspaces)
		fmt.Fprintf(&body, "  Online days: %d\n", premises.OnlineDays)
		fmt.Fprintf(&body, "  Booked days: %d\n", premises.TotalBookedDays)
		fmt.Fprintf(&body, "  Average occupancy: %s\n\n", formatPercent(premises.OccupancyRate()))
	}

	body.WriteString("Totals\n")
	fmt.Fprintf(&body, "  Bedspaces: %d\n", details.Total.Bedspaces)
	fmt.Fprintf(&body, "  Online days: %d\n", details.Total.OnlineDays)
	fmt.Fprintf(&body, "  Booked days: %d\n", details.Total.TotalBookedDays)
	fmt.Fprintf(&body, "  Average occupancy: %s\n", formatPercent(details.Total.OccupancyRate()))

	return DigestEmail{
		Subject: fmt.Sprintf("Bedspace occupancy digest: %s", month),
		Body:    body.String(),
	}
}

func formatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// SendDigest sends the digest to each recipient in turn. A failed recipient
// does not stop the rest; all failures are returned together.
func SendDigest(ctx context.Context, sender Sender, recipients []string, digest DigestEmail) error {
	if sender == nil {
		return fmt.Errorf("email sender is not configured")
	}
	if digest.Subject == "" || digest.Body == "" {
		return fmt.Errorf("digest subject and body are required")
	}

	logger := log.Ctx(ctx)
	var errs []error
	sent := 0
	for _, recipient := range recipients {
		recipient = strings.TrimSpace(recipient)
		if recipient == "" {
			continue
		}
		sendCtx, cancel := newEmailContext(ctx, digestEmailTimeout)
		err := sender.Send(sendCtx, recipient, digest.Subject, digest.Body)
		cancel()
		if err != nil {
			logger.Error().Err(err).Str("recipient", recipient).Msg("Failed to send occupancy digest")
			errs = append(errs, fmt.Errorf("send digest to %s: %w", recipient, err))
			continue
		}
		sent++
	}

	logger.Info().Int("sent", sent).Int("failed", len(errs)).Msg("Occupancy digest sent")
	return errors.Join(errs...)
}
