package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Kvng-HackSOC/mediadev/internal/logger"
	"github.com/Kvng-HackSOC/mediadev/internal/middlewares"
	"github.com/Kvng-HackSOC/mediadev/internal/services"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, token string) error
}

// LogoutResponse represents a successful logout
// swagger:model LogoutResponse
type LogoutResponse struct {
	// Success message
	// example: Logged out successfully
	Message string `json:"message"`
}

// NewLogoutHandler returns an HTTP handler that revokes the presented
// token.
// @Summary Log out
// @Description Revokes the presented access token for the rest of its lifetime.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.LogoutResponse "Logged out"
// @Failure 401 {object} handlers.ErrorResponse "Authentication required"
// @Router /auth/logout [post]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middlewares.GetTokenFromContext(r.Context())
		if token == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		if err := svc.Logout(r.Context(), token); err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, LogoutResponse{Message: "Logged out successfully"})
	}
}
