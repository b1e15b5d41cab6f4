package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/Kvng-HackSOC/mediadev/internal/logger"
	"github.com/Kvng-HackSOC/mediadev/internal/models"
)

// Tokener defines the minimal token interface needed by the middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetUserID(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// UserGetter loads the user a token refers to.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
}

// RevocationChecker reports whether a token has been logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// contextKey is an unexported type for keys in context
type contextKey struct{ name string }

var (
	userKey  = contextKey{"user"}
	tokenKey = contextKey{"token"}
)

// GetUserFromContext retrieves the authenticated user from the context.
// Returns nil for anonymous requests.
func GetUserFromContext(ctx context.Context) *models.UserDB {
	user, _ := ctx.Value(userKey).(*models.UserDB)
	return user
}

// GetTokenFromContext retrieves the presented bearer token from the
// context. Empty for anonymous requests.
func GetTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// WithIdentity returns a context carrying the authenticated user and
// the presented bearer token.
func WithIdentity(ctx context.Context, user *models.UserDB, token string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, tokenKey, token)
}

// writeAuthError writes the standard error envelope.
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": message,
			"status":  status,
		},
	})
}

// authenticate resolves the request's bearer token to an active user.
// It returns the HTTP status to fail with, or 0 on success.
func authenticate(r *http.Request, tokener Tokener, users UserGetter, revoked RevocationChecker) (*models.UserDB, string, int) {
	ctx := r.Context()

	tokenString, err := tokener.GetTokenFromRequest(ctx, r)
	if err != nil {
		return nil, "", http.StatusUnauthorized
	}

	if revoked != nil {
		isRevoked, err := revoked.IsRevoked(ctx, tokenString)
		if err != nil {
			logger.Log.Errorw("revocation check failed", "err", err)
			return nil, "", http.StatusInternalServerError
		}
		if isRevoked {
			return nil, "", http.StatusUnauthorized
		}
	}

	userID, err := tokener.GetUserID(ctx, tokenString)
	if err != nil {
		return nil, "", http.StatusUnauthorized
	}

	user, err := users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to load user for token", "user_id", userID, "err", err)
		return nil, "", http.StatusInternalServerError
	}
	if user == nil {
		return nil, "", http.StatusUnauthorized
	}
	if !user.IsActive {
		return nil, "", http.StatusForbidden
	}

	return user, tokenString, 0
}

// RequireAuth returns a middleware that rejects requests without a
// valid bearer token for an existing, active user.
func RequireAuth(tokener Tokener, users UserGetter, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, token, failStatus := authenticate(r, tokener, users, revoked)
			if failStatus != 0 {
				switch failStatus {
				case http.StatusForbidden:
					writeAuthError(w, failStatus, "account is disabled")
				case http.StatusUnauthorized:
					writeAuthError(w, failStatus, "authentication required")
				default:
					writeAuthError(w, failStatus, "internal server error")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), user, token)))
		})
	}
}

// OptionalAuth returns a middleware that attaches identity when a valid
// bearer token is presented and proceeds anonymously otherwise.
func OptionalAuth(tokener Tokener, users UserGetter, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, token, failStatus := authenticate(r, tokener, users, revoked)
			if failStatus != 0 {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), user, token)))
		})
	}
}
