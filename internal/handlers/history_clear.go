package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Kvng-HackSOC/mediadev/internal/logger"
	"github.com/Kvng-HackSOC/mediadev/internal/middlewares"
)

// HistoryClearer defines the interface that the history service must
// implement for bulk deletion.
type HistoryClearer interface {
	Clear(ctx context.Context, userID uuid.UUID) (int64, error)
}

// HistoryClearResponse represents the result of clearing history
// swagger:model HistoryClearResponse
type HistoryClearResponse struct {
	// Number of entries removed
	// example: 17
	DeletedCount int64 `json:"deleted_count"`
}

// NewHistoryClearHandler returns an HTTP handler that wipes the
// caller's search history.
// @Summary Clear search history
// @Description Removes all search history entries owned by the authenticated user.
// @Tags history
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.HistoryClearResponse "History cleared"
// @Failure 401 {object} handlers.ErrorResponse "Authentication required"
// @Router /history [delete]
func NewHistoryClearHandler(svc HistoryClearer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		deleted, err := svc.Clear(r.Context(), user.UserID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, HistoryClearResponse{DeletedCount: deleted})
	}
}
