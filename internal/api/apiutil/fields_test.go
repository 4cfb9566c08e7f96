package apiutil

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParsePositiveInt64Field(t *testing.T) {
	value, err := ParsePositiveInt64Field(" 42 ", "probation_region_id")
	if err != nil || value != 42 {
		t.Fatalf("got %d, %v", value, err)
	}

	for _, raw := range []string{"", "0", "-3", "abc"} {
		_, err := ParsePositiveInt64Field(raw, "probation_region_id")
		var fieldErr FieldError
		if !errors.As(err, &fieldErr) || fieldErr.Field != "probation_region_id" {
			t.Fatalf("raw %q: expected field error, got %v", raw, err)
		}
	}
}

func TestParseDateField(t *testing.T) {
	parsed, err := ParseDateField("2025-01-31", "end_date")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !parsed.Equal(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("parsed = %v", parsed)
	}

	for _, raw := range []string{"", "31/01/2025", "2025-02-30", "2025-01-31 10:00:00"} {
		if _, err := ParseDateField(raw, "end_date"); err == nil {
			t.Fatalf("raw %q: expected error", raw)
		}
	}
}

func TestWriteError_IncludesField(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteError(rec, 400, FieldError{Field: "start_date", Reason: "is required"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if rec.Code != 400 {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"field":"start_date"`) || !strings.Contains(body, `"error":"start_date is required"`) {
		t.Fatalf("body = %s", body)
	}
}
