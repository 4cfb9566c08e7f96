// cmd/server/server.go
package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/bedspace-reports/internal/api"
	"github.com/codr1/bedspace-reports/internal/api/holidays"
	"github.com/codr1/bedspace-reports/internal/api/reporting"
	"github.com/codr1/bedspace-reports/internal/bankholidays"
	"github.com/codr1/bedspace-reports/internal/calendar"
	"github.com/codr1/bedspace-reports/internal/config"
	"github.com/codr1/bedspace-reports/internal/db"
	"github.com/codr1/bedspace-reports/internal/ratelimit"
	"github.com/codr1/bedspace-reports/internal/reports"
)

const reportsPathPrefix = "/api/v1/reports/"

// app holds the long-lived dependencies shared by handlers and jobs.
type app struct {
	cfg     *config.Config
	db      *db.DB
	reports *reports.Service
	limiter *ratelimit.Limiter
}

func newApp(cfg *config.Config, database *db.DB, feed bankholidays.Fetcher) *app {
	division := cfg.BankHolidays.Division
	loadCalendar := func(ctx context.Context) (reports.WorkingDayCalendar, error) {
		return calendar.Load(ctx, database.Queries, division)
	}

	a := &app{
		cfg: cfg,
		db:  database,
		reports: reports.NewService(database.Queries, loadCalendar, reports.Options{
			MaxStayDays: cfg.Reports.MaxStayDays,
		}),
		limiter: ratelimit.New(&ratelimit.Config{
			Cooldown:   cfg.RateLimit.Cooldown,
			MaxPerHour: cfg.RateLimit.MaxPerHour,
		}),
	}

	reporting.InitHandlers(a.reports)
	holidays.InitHandlers(database, feed, division)
	return a
}

func (a *app) close() {
	a.limiter.Close()
}

func newServer(cfg *config.Config, a *app) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithRateLimit(a.limiter, reportsPathPrefix, cfg.RateLimit.TrustProxy),
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	// Register routes
	registerRoutes(router, a)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, a *app) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.db.Health(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Health check failed")
			http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Report routes
	mux.HandleFunc("GET /api/v1/reports", reporting.HandleListReports)
	mux.HandleFunc("GET /api/v1/reports/{reportType}", reporting.HandleReport)

	// Bank holiday routes
	mux.HandleFunc("POST /api/v1/bank-holidays/refresh", holidays.HandleRefresh)
}
