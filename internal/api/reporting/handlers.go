// internal/api/reporting/handlers.go
package reporting

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/bedspace-reports/internal/api/apiutil"
	"github.com/codr1/bedspace-reports/internal/reports"
	"github.com/codr1/bedspace-reports/internal/reports/export"
	"github.com/codr1/bedspace-reports/internal/request"
)

const reportTypePathKey = "reportType"

var (
	service     *reports.Service
	serviceOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *reports.Service) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

func loadService() *reports.Service {
	return service
}

type reportTypeResponse struct {
	Type        reports.ReportType `json:"type"`
	Description string             `json:"description"`
	Path        string             `json:"path"`
}

// GET /api/v1/reports
func HandleListReports(w http.ResponseWriter, r *http.Request) {
	types := reports.ReportTypes()
	response := make([]reportTypeResponse, 0, len(types))
	for _, reportType := range types {
		response = append(response, reportTypeResponse{
			Type:        reportType,
			Description: reportType.Description(),
			Path:        "/api/v1/reports/" + string(reportType),
		})
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, response); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write report list")
	}
}

// GET /api/v1/reports/{reportType}
func HandleReport(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Report service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	reportType, err := reports.ParseReportType(strings.TrimSpace(r.PathValue(reportTypePathKey)))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, apiutil.FieldError{Field: "report_type", Reason: "is not a known report"})
		return
	}

	props, err := request.ReportProperties(r, reportType)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	format, err := request.ReportFormat(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	report, err := svc.Run(r.Context(), props)
	if err != nil {
		var propsErr *reports.PropertiesError
		if errors.As(err, &propsErr) {
			writeError(w, r, http.StatusBadRequest, apiutil.FieldError{Field: propsErr.Field, Reason: propsErr.Reason})
			return
		}
		logger.Error().Err(err).Str("report_type", string(reportType)).Msg("Failed to generate report")
		writeError(w, r, http.StatusInternalServerError, apiutil.HandlerError{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate report",
			Err:     err,
		})
		return
	}

	// Serialise fully before writing so a failure can still become a 500.
	var body bytes.Buffer
	if err := export.Write(&body, report, format); err != nil {
		logger.Error().Err(err).Str("report_type", string(reportType)).Msg("Failed to serialise report")
		http.Error(w, "Failed to serialise report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	if format == export.FormatCSV {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(report, format)))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body.Bytes()); err != nil {
		logger.Warn().Err(err).Msg("Failed to write report response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status < http.StatusInternalServerError {
		log.Ctx(r.Context()).Debug().Err(err).Int("status", status).Msg("Report request rejected")
	}
	if writeErr := apiutil.WriteError(w, status, err); writeErr != nil {
		log.Ctx(r.Context()).Error().Err(writeErr).Msg("Failed to write error response")
	}
}
