package bankholidays

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/bedspace-reports/internal/dates"
	"github.com/codr1/bedspace-reports/internal/db"
	dbgen "github.com/codr1/bedspace-reports/internal/db/generated"
)

// Refresh fetches the division's holidays and upserts them in one transaction.
// It returns the number of holidays stored.
func Refresh(ctx context.Context, database *db.DB, fetcher Fetcher, division string) (int, error) {
	if database == nil {
		return 0, fmt.Errorf("bank holiday refresh requires database")
	}
	if fetcher == nil {
		return 0, fmt.Errorf("bank holiday refresh requires a fetcher")
	}

	logger := log.Ctx(ctx).With().
		Str("component", "bank_holiday_refresh").
		Str("division", division).
		Logger()

	events, err := fetcher.Fetch(ctx, division)
	if err != nil {
		return 0, err
	}

	stored := 0
	err = database.RunInTx(ctx, func(txdb *db.DB) error {
		for _, event := range events {
			holiday, err := dates.Parse(event.Date)
			if err != nil {
				return fmt.Errorf("bank holiday %q: %w", event.Title, err)
			}
			if err := txdb.Queries.UpsertBankHoliday(ctx, dbgen.UpsertBankHolidayParams{
				Division:    division,
				HolidayDate: dates.Format(holiday),
				Title:       strings.TrimSpace(event.Title),
			}); err != nil {
				return fmt.Errorf("upsert bank holiday %s: %w", event.Date, err)
			}
			stored++
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to refresh bank holidays")
		return 0, err
	}

	logger.Info().Int("bank_holidays", stored).Msg("Bank holidays refreshed")
	return stored, nil
}
