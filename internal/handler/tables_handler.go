package handlers

import (
	"net/http"

	"travelbook/internal/apperror"
)

type HealthResponse struct {
	Status      string `json:"status"`
	CountTables int    `json:"countTables"`
}

// HealthHandler pings the store and reports how many tables the public schema holds.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		h.Log.WithError(err).Error("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Message: "Database unavailable",
			Code:    apperror.CodeInternal,
		})
		return
	}

	count, err := h.TablesService.GetCountTablesDB(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, "OK", HealthResponse{Status: "ok", CountTables: count}, http.StatusOK)
}
