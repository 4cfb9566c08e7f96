// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/bedspace-reports/internal/bankholidays"
	"github.com/codr1/bedspace-reports/internal/config"
	"github.com/codr1/bedspace-reports/internal/db"
	"github.com/codr1/bedspace-reports/internal/email"
	"github.com/codr1/bedspace-reports/internal/scheduler"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", getEnv("CONFIG_PATH", "config.yaml"), "Path to YAML configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)
	shutdownTimeout := time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	feed, err := bankholidays.NewClient(cfg.BankHolidays.FeedURL, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bank holiday client")
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sender email.Sender
	if cfg.Digest.Enabled {
		sesClient, err := email.NewSESClient(ctx, cfg.Email.AccessKeyID, cfg.Email.SecretAccessKey, cfg.Email.Region, cfg.Email.Sender)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create SES client")
		}
		sender = sesClient
	}

	a := newApp(cfg, database, feed)
	defer a.close()

	if err := startScheduler(cfg, database, feed, a, sender); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	server := newServer(cfg, a)

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("environment", cfg.App.Environment).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := scheduler.Stop(); err != nil && !errors.Is(err, scheduler.ErrNotInitialized) {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

// startScheduler registers the enabled jobs. With none enabled the scheduler
// is not started.
func startScheduler(cfg *config.Config, database *db.DB, feed bankholidays.Fetcher, a *app, sender email.Sender) error {
	if !cfg.BankHolidays.Enabled && !cfg.Digest.Enabled {
		return nil
	}
	if err := scheduler.Init(); err != nil {
		return err
	}
	if cfg.BankHolidays.Enabled {
		if err := scheduler.RegisterBankHolidayRefreshJob(database, feed, cfg.BankHolidays.Division, cfg.BankHolidays.RefreshCron); err != nil {
			return err
		}
	}
	if cfg.Digest.Enabled {
		if err := scheduler.RegisterOccupancyDigestJob(scheduler.DigestJob{
			Reports:           a.reports,
			Sender:            sender,
			Recipients:        cfg.Digest.Recipients,
			ProbationRegionID: cfg.Digest.ProbationRegionID,
			Service:           cfg.Digest.Service,
		}, cfg.Digest.Cron); err != nil {
			return err
		}
	}
	return scheduler.Start()
}
