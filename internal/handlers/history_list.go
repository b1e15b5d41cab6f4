package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/Kvng-HackSOC/mediadev/internal/logger"
	"github.com/Kvng-HackSOC/mediadev/internal/middlewares"
	"github.com/Kvng-HackSOC/mediadev/internal/models"
)

// HistoryLister defines the interface that the history service must
// implement for listing.
type HistoryLister interface {
	List(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.SearchHistoryDB, int64, error)
}

// HistoryListResponse represents a page of search history
// swagger:model HistoryListResponse
type HistoryListResponse struct {
	// Search history entries, newest first
	Results []models.SearchHistoryDB `json:"results"`
	// Total entries for the user
	// example: 42
	Total int64 `json:"total"`
	// Page number
	// example: 1
	Page int `json:"page"`
	// Page size
	// example: 20
	PageSize int `json:"page_size"`
}

// NewHistoryListHandler returns an HTTP handler that lists the caller's
// search history.
// @Summary List search history
// @Description Returns the authenticated user's searches, newest first.
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} handlers.HistoryListResponse "History page"
// @Failure 401 {object} handlers.ErrorResponse "Authentication required"
// @Router /history [get]
func NewHistoryListHandler(svc HistoryLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		q := r.URL.Query()
		var page, pageSize int
		var err error
		if raw := q.Get("page"); raw != "" {
			if page, err = strconv.Atoi(raw); err != nil || page < 1 {
				writeError(w, http.StatusBadRequest, "page must be a positive integer")
				return
			}
		}
		if raw := q.Get("page_size"); raw != "" {
			if pageSize, err = strconv.Atoi(raw); err != nil || pageSize < 1 {
				writeError(w, http.StatusBadRequest, "page_size must be a positive integer")
				return
			}
		}

		items, total, err := svc.List(r.Context(), user.UserID, page, pageSize)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if page == 0 {
			page = 1
		}
		if pageSize == 0 {
			pageSize = 20
		}

		writeJSON(w, http.StatusOK, HistoryListResponse{
			Results:  items,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
