package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/SpaceCases_Go/internal/catalog"
	"github.com/osse101/SpaceCases_Go/internal/database"
	"github.com/osse101/SpaceCases_Go/internal/logger"
)

const readinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz reports ready once the database answers and a catalog
// snapshot is loaded. Drops cannot be priced without one.
func HandleReadyz(dbPool database.Pool, provider catalog.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			logger.FromContext(r.Context()).Error(LogMsgReadinessFailed, "component", "database", "error", err)
			respondJSON(w, r, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: "database connection failed",
			})
			return
		}

		if _, err := provider.Current(); err != nil {
			logger.FromContext(r.Context()).Warn(LogMsgReadinessFailed, "component", "catalog", "error", err)
			respondJSON(w, r, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: "catalog not loaded",
			})
			return
		}

		respondJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
