package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Kvng-HackSOC/mediadev/internal/logger"
	"github.com/Kvng-HackSOC/mediadev/internal/middlewares"
)

// Refresher defines the interface that the token-refresh service must
// implement.
type Refresher interface {
	Refresh(ctx context.Context, userID uuid.UUID, oldToken string) (string, error)
}

// RefreshResponse represents a successful token refresh
// swagger:model RefreshResponse
type RefreshResponse struct {
	// Fresh access token
	// example: JWT_TOKEN
	Token string `json:"token"`
}

// NewRefreshHandler returns an HTTP handler that exchanges a valid
// token for a fresh one.
// @Summary Refresh access token
// @Description Issues a fresh token and revokes the presented one.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.RefreshResponse "Fresh token returned"
// @Failure 401 {object} handlers.ErrorResponse "Authentication required"
// @Router /auth/refresh [post]
func NewRefreshHandler(svc Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		token := middlewares.GetTokenFromContext(r.Context())
		if user == nil || token == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		fresh, err := svc.Refresh(r.Context(), user.UserID, token)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, RefreshResponse{Token: fresh})
	}
}
