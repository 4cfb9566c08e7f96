// Package calendar answers working-day questions: weekends and bank holidays
// are not working days.
package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/bedspace-reports/internal/dates"
	dbgen "github.com/codr1/bedspace-reports/internal/db/generated"
)

// HolidaySource lists stored bank holidays for a division.
type HolidaySource interface {
	ListBankHolidays(ctx context.Context, division string) ([]dbgen.BankHoliday, error)
}

// Calendar is immutable once built and safe for concurrent use.
type Calendar struct {
	holidays map[time.Time]struct{}
}

// New builds a calendar from a list of bank holiday dates.
func New(holidays []time.Time) *Calendar {
	set := make(map[time.Time]struct{}, len(holidays))
	for _, holiday := range holidays {
		set[dates.Truncate(holiday)] = struct{}{}
	}
	return &Calendar{holidays: set}
}

// Load builds a calendar from the bank holidays stored for division.
func Load(ctx context.Context, source HolidaySource, division string) (*Calendar, error) {
	rows, err := source.ListBankHolidays(ctx, division)
	if err != nil {
		return nil, fmt.Errorf("list bank holidays: %w", err)
	}

	holidays := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		holiday, err := dates.Parse(row.HolidayDate)
		if err != nil {
			return nil, fmt.Errorf("bank holiday %q: %w", row.Title, err)
		}
		holidays = append(holidays, holiday)
	}

	log.Ctx(ctx).Debug().
		Str("division", division).
		Int("bank_holidays", len(holidays)).
		Msg("Working day calendar loaded")

	return New(holidays), nil
}

// IsWorkingDay reports whether date is neither a weekend day nor a bank holiday.
func (c *Calendar) IsWorkingDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	if c == nil {
		return true
	}
	_, holiday := c.holidays[dates.Truncate(date)]
	return !holiday
}

// AddWorkingDays returns the date reached after advancing n working days from
// date. The starting date itself never counts. n <= 0 returns date unchanged.
func (c *Calendar) AddWorkingDays(date time.Time, n int) time.Time {
	current := dates.Truncate(date)
	for remaining := n; remaining > 0; {
		current = dates.AddDays(current, 1)
		if c.IsWorkingDay(current) {
			remaining--
		}
	}
	return current
}

// WorkingDaysBetween counts working days in the closed range [start, end].
func (c *Calendar) WorkingDaysBetween(start, end time.Time) int {
	start, end = dates.Truncate(start), dates.Truncate(end)
	count := 0
	for current := start; !current.After(end); current = dates.AddDays(current, 1) {
		if c.IsWorkingDay(current) {
			count++
		}
	}
	return count
}

// Holidays returns the bank holidays known to the calendar in date order.
func (c *Calendar) Holidays() []time.Time {
	if c == nil {
		return nil
	}
	holidays := make([]time.Time, 0, len(c.holidays))
	for holiday := range c.holidays {
		holidays = append(holidays, holiday)
	}
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Before(holidays[j])
	})
	return holidays
}
