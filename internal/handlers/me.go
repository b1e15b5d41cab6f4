package handlers

import (
	"net/http"

	"github.com/Kvng-HackSOC/mediadev/internal/middlewares"
	"github.com/Kvng-HackSOC/mediadev/internal/models"
)

// MeResponse represents the current authenticated user
// swagger:model MeResponse
type MeResponse struct {
	User *models.UserDB `json:"user"`
}

// NewMeHandler returns an HTTP handler for the current user profile.
// @Summary Current user
// @Description Returns the authenticated user's profile. The password hash is never serialized.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MeResponse "Current user"
// @Failure 401 {object} handlers.ErrorResponse "Authentication required"
// @Router /auth/me [get]
func NewMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		writeJSON(w, http.StatusOK, MeResponse{User: user})
	}
}
