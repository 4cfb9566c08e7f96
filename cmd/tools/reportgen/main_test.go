package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"testing"

	"github.com/codr1/bedspace-reports/internal/config"
	"github.com/codr1/bedspace-reports/internal/reports"
	"github.com/codr1/bedspace-reports/internal/reports/export"
	"github.com/codr1/bedspace-reports/internal/testutil"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-type", "bookings", "-start", "2025-01-01", "-end", "2025-01-31", "-region", "4", "-service", "cas3", "-format", "json"}, io.Discard)
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	props, format, err := opts.properties()
	if err != nil {
		t.Fatalf("properties: %v", err)
	}
	if props.Type != reports.ReportBookings || props.Service != "CAS3" || format != export.FormatJSON {
		t.Fatalf("props = %+v, format = %s", props, format)
	}
	if props.ProbationRegionID == nil || *props.ProbationRegionID != 4 {
		t.Fatalf("region = %v", props.ProbationRegionID)
	}

	if _, err := parseFlags([]string{"-type", "bookings"}, io.Discard); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}

	bad := options{reportType: "bookings", start: "2025-01-01", end: "31/01/2025", format: "csv"}
	if _, _, err := bad.properties(); err == nil {
		t.Fatal("expected error for malformed end date")
	}
	bad = options{reportType: "lost-beds", start: "2025-01-01", end: "2025-01-31"}
	if _, _, err := bad.properties(); !errors.Is(err, reports.ErrUnknownReportType) {
		t.Fatalf("expected ErrUnknownReportType, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	database := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, database)
	premises := fixtures.Scaffold("CAS3")
	bedspaceID := fixtures.Bedspace(testutil.BedspaceParams{
		PremisesID: premises.PremisesID,
		StartDate:  "2025-01-01",
		EndDate:    "2025-01-31",
	})
	fixtures.Void(testutil.VoidParams{BedspaceID: bedspaceID, StartDate: "2025-01-20", EndDate: "2025-01-22"})

	cfg, err := config.Parse([]byte("app:\n  name: test\n"))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	opts := options{reportType: "booking-gap", start: "2025-01-01", end: "2025-01-31", format: "csv"}
	props, format, err := opts.properties()
	if err != nil {
		t.Fatalf("properties: %v", err)
	}

	var out bytes.Buffer
	report, err := generate(context.Background(), database, cfg, props, format, &out)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	records, err := csv.NewReader(&out).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(report.Rows) != 2 || len(records) != 3 {
		t.Fatalf("rows = %d, records = %d", len(report.Rows), len(records))
	}
}
