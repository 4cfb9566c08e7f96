package reports

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/codr1/bedspace-reports/internal/dates"
)

var (
	ErrUnknownReportType = errors.New("unknown report type")
	ErrInvalidProperties = errors.New("invalid report properties")
)

const maxWindowDays = 366

var validate = validator.New()

var supportedReportTypes = []ReportType{
	ReportBedUsage,
	ReportBedspaceOccupancy,
	ReportBookingGap,
	ReportBookings,
	ReportReferrals,
}

var reportTypeDescriptions = map[ReportType]string{
	ReportBedUsage:          "Bookings, turnarounds and voids per bedspace",
	ReportBedspaceOccupancy: "Day counts and occupancy rate per bedspace",
	ReportBookingGap:        "Periods in which a bedspace was free",
	ReportBookings:          "Bookings overlapping the window with length of stay",
	ReportReferrals:         "Referrals submitted in the window and their outcome",
}

// ReportType names one report generator.
type ReportType string

const (
	ReportBedUsage          ReportType = "bed-usage"
	ReportBedspaceOccupancy ReportType = "bedspace-occupancy"
	ReportBookingGap        ReportType = "booking-gap"
	ReportBookings          ReportType = "bookings"
	ReportReferrals         ReportType = "referrals"
)

// ReportTypes returns every supported report type in a stable order.
func ReportTypes() []ReportType {
	return append([]ReportType(nil), supportedReportTypes...)
}

func ParseReportType(value string) (ReportType, error) {
	candidate := ReportType(strings.ToLower(strings.TrimSpace(value)))
	for _, reportType := range supportedReportTypes {
		if candidate == reportType {
			return reportType, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReportType, value)
}

func (t ReportType) Description() string {
	return reportTypeDescriptions[t]
}

// Properties are the parameters of one report run. Dates are calendar dates
// and the window is closed on both ends.
type Properties struct {
	Type              ReportType `json:"type" validate:"required"`
	ProbationRegionID *int64     `json:"probationRegionId,omitempty" validate:"omitempty,gt=0"`
	Service           string     `json:"service,omitempty" validate:"omitempty,oneof=CAS1 CAS2 CAS3"`
	StartDate         time.Time  `json:"startDate" validate:"required"`
	EndDate           time.Time  `json:"endDate" validate:"required,gtefield=StartDate"`
}

// Window is the closed date range the report covers.
func (p Properties) Window() dates.Range {
	return dates.NewRange(p.StartDate, p.EndDate)
}

// Validate returns a PropertiesError describing the first invalid field.
func (p Properties) Validate() error {
	if _, err := ParseReportType(string(p.Type)); err != nil {
		return &PropertiesError{Field: "type", Reason: "unknown report type", err: err}
	}
	if err := validate.Struct(p); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fieldErr := validationErrors[0]
			return &PropertiesError{
				Field:  jsonFieldName(fieldErr.StructField()),
				Reason: validationReason(fieldErr),
				err:    ErrInvalidProperties,
			}
		}
		return fmt.Errorf("validate properties: %w", err)
	}
	if days := p.Window().Days(); days > maxWindowDays {
		return &PropertiesError{
			Field:  "end_date",
			Reason: fmt.Sprintf("report window is %d days; at most %d allowed", days, maxWindowDays),
			err:    ErrInvalidProperties,
		}
	}
	return nil
}

// PropertiesError names the report parameter that failed validation.
type PropertiesError struct {
	Field  string
	Reason string
	err    error
}

func (e *PropertiesError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *PropertiesError) Unwrap() error {
	return e.err
}

func jsonFieldName(structField string) string {
	switch structField {
	case "ProbationRegionID":
		return "probation_region_id"
	case "StartDate":
		return "start_date"
	case "EndDate":
		return "end_date"
	case "Service":
		return "service"
	default:
		return strings.ToLower(structField)
	}
}

func validationReason(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fieldErr.Param(), " ", ", ")
	case "gt":
		return "must be a positive id"
	case "gtefield":
		return "must not be before start_date"
	default:
		return "failed " + fieldErr.Tag() + " validation"
	}
}
