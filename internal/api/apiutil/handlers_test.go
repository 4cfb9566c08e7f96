package apiutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantError string
		wantField string
	}{
		{name: "field error", err: FieldError{Field: "start_date", Reason: "is required"}, wantError: "start_date is required", wantField: "start_date"},
		{name: "handler error hides cause", err: HandlerError{Status: 500, Message: "Failed to generate report", Err: errors.New("disk I/O error")}, wantError: "Failed to generate report"},
		{name: "plain error", err: errors.New("boom"), wantError: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, http.StatusBadRequest, tt.err); err != nil {
				t.Fatalf("write error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			if got := rec.Header().Get("Content-Type"); got != "application/json" {
				t.Fatalf("content type = %q", got)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.wantError || body.Field != tt.wantField {
				t.Fatalf("body = %+v", body)
			}
		})
	}
}
