package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Kvng-HackSOC/mediadev/internal/logger"
	"github.com/Kvng-HackSOC/mediadev/internal/middlewares"
	"github.com/Kvng-HackSOC/mediadev/internal/services"
)

// HistoryDeleter defines the interface that the history service must
// implement for single-entry deletion.
type HistoryDeleter interface {
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// HistoryDeleteResponse represents a successful entry deletion
// swagger:model HistoryDeleteResponse
type HistoryDeleteResponse struct {
	// Success message
	// example: history entry deleted
	Message string `json:"message"`
}

// NewHistoryDeleteHandler returns an HTTP handler that deletes one of
// the caller's history entries.
// @Summary Delete a history entry
// @Description Removes a single search history entry owned by the authenticated user.
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param id path string true "History entry identifier"
// @Success 200 {object} handlers.HistoryDeleteResponse "Entry deleted"
// @Failure 400 {object} handlers.ErrorResponse "Invalid identifier"
// @Failure 401 {object} handlers.ErrorResponse "Authentication required"
// @Failure 404 {object} handlers.ErrorResponse "Entry not found"
// @Router /history/{id} [delete]
func NewHistoryDeleteHandler(svc HistoryDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid history entry id")
			return
		}

		if err := svc.Delete(r.Context(), user.UserID, id); err != nil {
			if errors.Is(err, services.ErrHistoryNotFound) {
				writeError(w, http.StatusNotFound, "history entry not found")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, HistoryDeleteResponse{Message: "history entry deleted"})
	}
}
