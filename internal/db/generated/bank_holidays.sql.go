// source: bank_holidays.sql

package dbgen

import (
	"context"
)

const listBankHolidays = `-- name: ListBankHolidays :many
SELECT division, holiday_date, title, updated_at
FROM bank_holidays
WHERE division = ?
ORDER BY holiday_date
`

func (q *Queries) ListBankHolidays(ctx context.Context, division string) ([]BankHoliday, error) {
	rows, err := q.db.QueryContext(ctx, listBankHolidays, division)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BankHoliday
	for rows.Next() {
		var i BankHoliday
		if err := rows.Scan(
			&i.Division,
			&i.HolidayDate,
			&i.Title,
			&i.UpdatedAt,
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

const upsertBankHoliday = `-- name: UpsertBankHoliday :exec
INSERT INTO bank_holidays (division, holiday_date, title, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (division, holiday_date) DO UPDATE SET
    title = excluded.title,
    updated_at = CURRENT_TIMESTAMP
`

type UpsertBankHolidayParams struct {
	Division    string `json:"division"`
	HolidayDate string `json:"holiday_date"`
	Title       string `json:"title"`
}

func (q *Queries) UpsertBankHoliday(ctx context.Context, arg UpsertBankHolidayParams) error {
	_, err := q.db.ExecContext(ctx, upsertBankHoliday, arg.Division, arg.HolidayDate, arg.Title)
	return err
}

const countBankHolidays = `-- name: CountBankHolidays :one
SELECT COUNT(*) FROM bank_holidays WHERE division = ?
`

func (q *Queries) CountBankHolidays(ctx context.Context, division string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countBankHolidays, division)
	var count int64
	err := row.Scan(&count)
	return count, err
}
