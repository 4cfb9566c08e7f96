package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codr1/bedspace-reports/internal/bankholidays"
	"github.com/codr1/bedspace-reports/internal/config"
	"github.com/codr1/bedspace-reports/internal/testutil"
)

type emptyFeed struct{}

func (emptyFeed) Fetch(ctx context.Context, division string) ([]bankholidays.Event, error) {
	return nil, nil
}

func TestServerRoutes(t *testing.T) {
	cfg, err := config.Parse([]byte(`
app:
  name: "Bedspace Reports"
  port: 8080
database:
  driver: "sqlite"
  filename: "unused.db"
rate_limit:
  cooldown: 1m
`))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}

	a := newApp(cfg, testutil.NewTestDB(t), emptyFeed{})
	t.Cleanup(a.close)
	server := httptest.NewServer(newServer(cfg, a).Handler)
	t.Cleanup(server.Close)

	client := &http.Client{Timeout: 5 * time.Second}
	check := func(method, path string, want int) *http.Response {
		t.Helper()
		req, err := http.NewRequest(method, server.URL+path, nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", method, path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != want {
			t.Fatalf("%s %s status = %d, want %d", method, path, resp.StatusCode, want)
		}
		return resp
	}

	check(http.MethodGet, "/health", http.StatusOK)
	check(http.MethodGet, "/api/v1/reports", http.StatusOK)

	gapPath := "/api/v1/reports/booking-gap?start_date=2025-01-01&end_date=2025-01-31"
	resp := check(http.MethodGet, gapPath, http.StatusOK)
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID")
	}
	check(http.MethodGet, gapPath, http.StatusTooManyRequests)
	check(http.MethodGet, "/api/v1/reports/unknown?start_date=2025-01-01&end_date=2025-01-31", http.StatusBadRequest)
	check(http.MethodPost, "/api/v1/bank-holidays/refresh", http.StatusOK)
	check(http.MethodGet, "/api/v1/bank-holidays/refresh", http.StatusMethodNotAllowed)
}
