package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/bedspace-reports/internal/calendar"
	"github.com/codr1/bedspace-reports/internal/dates"
)

// CalendarLoader returns the working-day calendar for one report run.
type CalendarLoader func(ctx context.Context) (WorkingDayCalendar, error)

type Options struct {
	MaxStayDays int
	Now         func() time.Time
}

// Report is the complete output of one run.
type Report struct {
	Type        ReportType `json:"type"`
	Properties  Properties `json:"properties"`
	Columns     []string   `json:"columns"`
	Rows        []Row      `json:"rows"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

// Records returns the report rows as string records in column order.
func (r *Report) Records() [][]string {
	records := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		records[i] = row.Record()
	}
	return records
}

// Service runs reports. Each run builds its own generator and dataset, so a
// Service may be shared between goroutines.
type Service struct {
	source       Source
	loadCalendar CalendarLoader
	maxStayDays  int
	now          func() time.Time
}

func NewService(source Source, loadCalendar CalendarLoader, opts Options) *Service {
	if opts.MaxStayDays <= 0 {
		opts.MaxStayDays = DefaultMaxStayDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		source:       source,
		loadCalendar: loadCalendar,
		maxStayDays:  opts.MaxStayDays,
		now:          opts.Now,
	}
}

// Generator returns the generator for reportType.
func (s *Service) Generator(ctx context.Context, reportType ReportType) (Generator, error) {
	switch reportType {
	case ReportBedUsage:
		cal, err := s.workingDayCalendar(ctx)
		if err != nil {
			return nil, err
		}
		return NewBedUsageGenerator(cal), nil
	case ReportBedspaceOccupancy:
		cal, err := s.workingDayCalendar(ctx)
		if err != nil {
			return nil, err
		}
		return NewBedspaceOccupancyGenerator(cal), nil
	case ReportBookingGap:
		cal, err := s.workingDayCalendar(ctx)
		if err != nil {
			return nil, err
		}
		return NewBookingGapGenerator(cal), nil
	case ReportBookings:
		return NewBookingsGenerator(s.maxStayDays), nil
	case ReportReferrals:
		return NewReferralsGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownReportType, reportType)
	}
}

// Run validates props, loads the source rows for the window, applies the
// region and service filter and generates the report.
func (s *Service) Run(ctx context.Context, props Properties) (*Report, error) {
	props.StartDate = dates.Truncate(props.StartDate)
	props.EndDate = dates.Truncate(props.EndDate)
	if reportType, err := ParseReportType(string(props.Type)); err == nil {
		props.Type = reportType
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}

	generator, err := s.Generator(ctx, props.Type)
	if err != nil {
		return nil, err
	}

	data, err := generator.Load(ctx, s.source, props)
	if err != nil {
		return nil, fmt.Errorf("load %s report: %w", props.Type, err)
	}
	data = data.Filter(NewFilter(props))

	rows, err := generator.Generate(ctx, data, props)
	if err != nil {
		return nil, fmt.Errorf("generate %s report: %w", props.Type, err)
	}

	log.Ctx(ctx).Info().
		Str("report_type", string(props.Type)).
		Str("window", props.Window().String()).
		Int("bedspaces", len(data.Bedspaces)).
		Int("rows", len(rows)).
		Msg("Report generated")

	return &Report{
		Type:        props.Type,
		Properties:  props,
		Columns:     generator.Columns(),
		Rows:        rows,
		GeneratedAt: s.now().UTC(),
	}, nil
}

func (s *Service) workingDayCalendar(ctx context.Context) (WorkingDayCalendar, error) {
	if s.loadCalendar == nil {
		return calendar.New(nil), nil
	}
	cal, err := s.loadCalendar(ctx)
	if err != nil {
		return nil, fmt.Errorf("load working day calendar: %w", err)
	}
	return cal, nil
}
