package reports

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/codr1/bedspace-reports/internal/dates"
)

// WorkingDayCalendar is the working-day arithmetic the generators need.
// *calendar.Calendar satisfies it.
type WorkingDayCalendar interface {
	AddWorkingDays(date time.Time, n int) time.Time
	WorkingDaysBetween(start, end time.Time) int
}

// Row is one line of a report table.
type Row interface {
	Record() []string
}

// Generator produces one report type. Load reads the source rows the report
// needs; Generate is a pure function of the filtered dataset and properties.
type Generator interface {
	Type() ReportType
	Columns() []string
	Load(ctx context.Context, source Source, props Properties) (Dataset, error)
	Generate(ctx context.Context, data Dataset, props Properties) ([]Row, error)
}

// Location is the place a bedspace row reports under.
type Location struct {
	ProbationRegion string `json:"probationRegion"`
	PDU             string `json:"pdu"`
	PremisesName    string `json:"premisesName"`
	BedName         string `json:"bedName"`
}

func locationOf(bedspace Bedspace) Location {
	return Location{
		ProbationRegion: bedspace.RegionName,
		PDU:             bedspace.PDUName,
		PremisesName:    bedspace.PremisesName,
		BedName:         bedspace.Name,
	}
}

func (l Location) record() []string {
	return []string{l.ProbationRegion, l.PDU, l.PremisesName, l.BedName}
}

var locationColumns = []string{"probation_region", "pdu", "premises_name", "bed_name"}

// compareLocation orders by region, PDU, premises and bed name.
func compareLocation(a, b Location) int {
	if c := strings.Compare(a.ProbationRegion, b.ProbationRegion); c != 0 {
		return c
	}
	if c := strings.Compare(a.PDU, b.PDU); c != 0 {
		return c
	}
	if c := strings.Compare(a.PremisesName, b.PremisesName); c != 0 {
		return c
	}
	return strings.Compare(a.BedName, b.BedName)
}

func columns(extra ...string) []string {
	out := make([]string, 0, len(locationColumns)+len(extra))
	out = append(out, locationColumns...)
	return append(out, extra...)
}

func formatOptionalDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return dates.Format(*value)
}

func formatOptionalBool(value *bool) string {
	if value == nil {
		return ""
	}
	return strconv.FormatBool(*value)
}

func formatOptionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatOptionalInt(value *int64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatInt(*value, 10)
}
