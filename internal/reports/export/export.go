// Package export serialises report tables for download.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/codr1/bedspace-reports/internal/dates"
	"github.com/codr1/bedspace-reports/internal/reports"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q", value)
	}
}

func ContentType(format Format) string {
	if format == FormatJSON {
		return "application/json"
	}
	return "text/csv; charset=utf-8"
}

// Filename is the suggested download name, e.g.
// booking-gap-2025-01-01-2025-01-31.csv.
func Filename(report *reports.Report, format Format) string {
	return fmt.Sprintf("%s-%s-%s.%s",
		report.Type,
		dates.Format(report.Properties.StartDate),
		dates.Format(report.Properties.EndDate),
		format,
	)
}

// Write serialises report in the given format.
func Write(w io.Writer, report *reports.Report, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, report)
	default:
		return WriteCSV(w, report)
	}
}

// WriteCSV writes a header line of column names followed by one record per row.
func WriteCSV(w io.Writer, report *reports.Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(report.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range report.Rows {
		record := row.Record()
		if len(record) != len(report.Columns) {
			return fmt.Errorf("row %d has %d fields, want %d", i, len(record), len(report.Columns))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

type jsonReport struct {
	Type        reports.ReportType `json:"type"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	RegionID    *int64             `json:"probationRegionId,omitempty"`
	Service     string             `json:"service,omitempty"`
	GeneratedAt string             `json:"generatedAt"`
	Columns     []string           `json:"columns"`
	Rows        []reports.Row      `json:"rows"`
}

// WriteJSON writes the report with its parameters and typed rows.
func WriteJSON(w io.Writer, report *reports.Report) error {
	rows := report.Rows
	if rows == nil {
		rows = []reports.Row{}
	}
	payload := jsonReport{
		Type:        report.Type,
		StartDate:   dates.Format(report.Properties.StartDate),
		EndDate:     dates.Format(report.Properties.EndDate),
		RegionID:    report.Properties.ProbationRegionID,
		Service:     report.Properties.Service,
		GeneratedAt: report.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Columns:     report.Columns,
		Rows:        rows,
	}

	encoder := json.NewEncoder(w)
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
