package dbgen

type BankHoliday struct {
	Division    string `json:"division"`
	HolidayDate string `json:"holiday_date"`
	Title       string `json:"title"`
	UpdatedAt   string `json:"updated_at"`
}

type ProbationRegion struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
