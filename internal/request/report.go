// Package request reads report parameters from HTTP requests.
package request

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/bedspace-reports/internal/api/apiutil"
	"github.com/codr1/bedspace-reports/internal/reports"
	"github.com/codr1/bedspace-reports/internal/reports/export"
)

const (
	startDateKey         = "start_date"
	endDateKey           = "end_date"
	probationRegionIDKey = "probation_region_id"
	serviceKey           = "service"
	formatKey            = "format"
)

// ReportProperties builds report properties from the query string. Only
// syntax is checked here; reports.Properties.Validate checks the values.
func ReportProperties(r *http.Request, reportType reports.ReportType) (reports.Properties, error) {
	query := r.URL.Query()
	props := reports.Properties{Type: reportType}

	startDate, err := apiutil.ParseDateField(query.Get(startDateKey), startDateKey)
	if err != nil {
		return reports.Properties{}, err
	}
	endDate, err := apiutil.ParseDateField(query.Get(endDateKey), endDateKey)
	if err != nil {
		return reports.Properties{}, err
	}
	props.StartDate, props.EndDate = startDate, endDate

	if raw := strings.TrimSpace(query.Get(probationRegionIDKey)); raw != "" {
		regionID, err := apiutil.ParsePositiveInt64Field(raw, probationRegionIDKey)
		if err != nil {
			return reports.Properties{}, err
		}
		props.ProbationRegionID = &regionID
	}

	props.Service = strings.ToUpper(strings.TrimSpace(query.Get(serviceKey)))

	log.Ctx(r.Context()).Debug().
		Str("report_type", string(reportType)).
		Str("window", props.Window().String()).
		Msg("Report parameters parsed")

	return props, nil
}

// ReportFormat reads the requested output format, defaulting to CSV.
func ReportFormat(r *http.Request) (export.Format, error) {
	format, err := export.ParseFormat(r.URL.Query().Get(formatKey))
	if err != nil {
		return "", apiutil.FieldError{Field: formatKey, Reason: "must be csv or json"}
	}
	return format, nil
}

// RequestKey identifies a report request independent of query parameter
// order, for rate limiting identical requests.
func RequestKey(r *http.Request) string {
	canonical := url.Values{}
	for key, values := range r.URL.Query() {
		for _, value := range values {
			canonical.Add(key, strings.TrimSpace(value))
		}
	}
	// Encode sorts by key.
	return r.URL.Path + "?" + canonical.Encode()
}
