// internal/api/holidays/handlers.go
package holidays

import (
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/bedspace-reports/internal/api/apiutil"
	"github.com/codr1/bedspace-reports/internal/bankholidays"
	"github.com/codr1/bedspace-reports/internal/db"
)

var (
	queries      *db.DB
	fetcher      bankholidays.Fetcher
	division     string
	handlersOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *db.DB, feed bankholidays.Fetcher, divisionName string) {
	if database == nil || feed == nil {
		return
	}
	handlersOnce.Do(func() {
		queries = database
		fetcher = feed
		division = divisionName
	})
}

type refreshResponse struct {
	Division string `json:"division"`
	Stored   int    `json:"stored"`
}

// POST /api/v1/bank-holidays/refresh
func HandleRefresh(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if queries == nil || fetcher == nil {
		logger.Error().Msg("Bank holiday handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	stored, err := bankholidays.Refresh(r.Context(), queries, fetcher, division)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, bankholidays.ErrDivisionNotFound) {
			status = http.StatusNotFound
		}
		if writeErr := apiutil.WriteError(w, status, apiutil.HandlerError{
			Status:  status,
			Message: "Failed to refresh bank holidays",
			Err:     err,
		}); writeErr != nil {
			logger.Error().Err(writeErr).Msg("Failed to write error response")
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, refreshResponse{Division: division, Stored: stored}); err != nil {
		logger.Error().Err(err).Msg("Failed to write refresh response")
	}
}
