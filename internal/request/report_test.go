package request

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/codr1/bedspace-reports/internal/api/apiutil"
	"github.com/codr1/bedspace-reports/internal/reports"
	"github.com/codr1/bedspace-reports/internal/reports/export"
)

func TestReportProperties(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/reports/booking-gap?start_date=2025-01-01&end_date=2025-01-31&probation_region_id=7&service=cas3", nil)

	props, err := ReportProperties(r, reports.ReportBookingGap)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if props.Type != reports.ReportBookingGap || props.Service != "CAS3" {
		t.Fatalf("props = %+v", props)
	}
	if props.ProbationRegionID == nil || *props.ProbationRegionID != 7 {
		t.Fatalf("region = %v", props.ProbationRegionID)
	}
	if props.Window().Days() != 31 {
		t.Fatalf("window = %s", props.Window())
	}
}

func TestReportProperties_FieldErrors(t *testing.T) {
	tests := map[string]string{
		"/r?end_date=2025-01-31":                                               "start_date",
		"/r?start_date=2025-01-01":                                             "end_date",
		"/r?start_date=01-01-2025&end_date=2025-01-31":                         "start_date",
		"/r?start_date=2025-01-01&end_date=2025-01-31&probation_region_id=abc": "probation_region_id",
	}
	for target, wantField := range tests {
		_, err := ReportProperties(httptest.NewRequest("GET", target, nil), reports.ReportBookings)
		var fieldErr apiutil.FieldError
		if !errors.As(err, &fieldErr) || fieldErr.Field != wantField {
			t.Fatalf("%s: expected %s field error, got %v", target, wantField, err)
		}
	}
}

func TestReportFormat(t *testing.T) {
	format, err := ReportFormat(httptest.NewRequest("GET", "/r?format=json", nil))
	if err != nil || format != export.FormatJSON {
		t.Fatalf("format = %q, %v", format, err)
	}
	format, err = ReportFormat(httptest.NewRequest("GET", "/r", nil))
	if err != nil || format != export.FormatCSV {
		t.Fatalf("default format = %q, %v", format, err)
	}
	if _, err := ReportFormat(httptest.NewRequest("GET", "/r?format=pdf", nil)); err == nil {
		t.Fatal("expected error for pdf")
	}
}

func TestRequestKey_IgnoresParameterOrder(t *testing.T) {
	a := RequestKey(httptest.NewRequest("GET", "/api/v1/reports/bookings?start_date=2025-01-01&end_date=2025-01-31", nil))
	b := RequestKey(httptest.NewRequest("GET", "/api/v1/reports/bookings?end_date=2025-01-31&start_date=2025-01-01", nil))
	if a != b {
		t.Fatalf("keys differ: %q vs %q", a, b)
	}
	c := RequestKey(httptest.NewRequest("GET", "/api/v1/reports/referrals?end_date=2025-01-31&start_date=2025-01-01", nil))
	if a == c {
		t.Fatal("different reports share a key")
	}
}
