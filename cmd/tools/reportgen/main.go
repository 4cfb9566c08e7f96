// cmd/tools/reportgen/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/bedspace-reports/internal/api/apiutil"
	"github.com/codr1/bedspace-reports/internal/calendar"
	"github.com/codr1/bedspace-reports/internal/config"
	"github.com/codr1/bedspace-reports/internal/db"
	"github.com/codr1/bedspace-reports/internal/reports"
	"github.com/codr1/bedspace-reports/internal/reports/export"
)

var errUsage = errors.New("usage")

type options struct {
	configPath string
	reportType string
	start      string
	end        string
	region     string
	service    string
	format     string
	out        string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("reportgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "config.yaml", "Path to YAML configuration")
	fs.StringVar(&opts.reportType, "type", "", "Report type ("+joinTypes()+")")
	fs.StringVar(&opts.start, "start", "", "First day of the report window (YYYY-MM-DD)")
	fs.StringVar(&opts.end, "end", "", "Last day of the report window (YYYY-MM-DD)")
	fs.StringVar(&opts.region, "region", "", "Probation region id")
	fs.StringVar(&opts.service, "service", "", "Service (CAS1, CAS2, CAS3)")
	fs.StringVar(&opts.format, "format", "csv", "Output format (csv, json)")
	fs.StringVar(&opts.out, "out", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.reportType == "" || opts.start == "" || opts.end == "" {
		fs.PrintDefaults()
		return options{}, fmt.Errorf("%w: -type, -start and -end are required", errUsage)
	}
	return opts, nil
}

func joinTypes() string {
	types := reports.ReportTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// properties converts the flag values into report properties.
func (o options) properties() (reports.Properties, export.Format, error) {
	reportType, err := reports.ParseReportType(o.reportType)
	if err != nil {
		return reports.Properties{}, "", err
	}
	start, err := apiutil.ParseDateField(o.start, "start")
	if err != nil {
		return reports.Properties{}, "", err
	}
	end, err := apiutil.ParseDateField(o.end, "end")
	if err != nil {
		return reports.Properties{}, "", err
	}
	props := reports.Properties{
		Type:      reportType,
		StartDate: start,
		EndDate:   end,
		Service:   strings.ToUpper(strings.TrimSpace(o.service)),
	}
	if strings.TrimSpace(o.region) != "" {
		regionID, err := apiutil.ParsePositiveInt64Field(o.region, "region")
		if err != nil {
			return reports.Properties{}, "", err
		}
		props.ProbationRegionID = &regionID
	}
	format, err := export.ParseFormat(o.format)
	if err != nil {
		return reports.Properties{}, "", err
	}
	return props, format, nil
}

// generate runs one report against database and writes it to w.
func generate(ctx context.Context, database *db.DB, cfg *config.Config, props reports.Properties, format export.Format, w io.Writer) (*reports.Report, error) {
	division := cfg.BankHolidays.Division
	service := reports.NewService(database.Queries, func(ctx context.Context) (reports.WorkingDayCalendar, error) {
		return calendar.Load(ctx, database.Queries, division)
	}, reports.Options{MaxStayDays: cfg.Reports.MaxStayDays})

	report, err := service.Run(ctx, props)
	if err != nil {
		return nil, err
	}
	if err := export.Write(w, report, format); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return report, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	props, format, err := opts.properties()
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	database, err := db.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	w := stdout
	if opts.out != "" {
		file, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer file.Close()
		w = file
	}

	report, err := generate(ctx, database, cfg, props, format, w)
	if err != nil {
		return err
	}
	log.Ctx(ctx).Info().
		Str("report_type", string(report.Type)).
		Int("rows", len(report.Rows)).
		Str("out", opts.out).
		Msg("Report written")
	return nil
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Error().Err(err).Msg("Report generation failed")
		stop()
		os.Exit(1)
	}
}
