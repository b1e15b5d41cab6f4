package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Kvng-HackSOC/mediadev/internal/logger"
	"github.com/Kvng-HackSOC/mediadev/internal/openverse"
	"github.com/Kvng-HackSOC/mediadev/internal/services"
)

// ErrorBody carries the error message and mirrored HTTP status.
// swagger:model ErrorBody
type ErrorBody struct {
	// Error message
	// example: authentication required
	Message string `json:"message"`

	// HTTP status
	// example: 401
	Status int `json:"status"`
}

// ErrorResponse is the envelope for all error responses.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Message: message, Status: status}})
}

// writeSearchError maps search-path failures, including everything the
// upstream client can produce, onto the error envelope.
func writeSearchError(w http.ResponseWriter, err error) {
	var uerr *openverse.UpstreamError
	switch {
	case errors.Is(err, services.ErrEmptyQuery),
		errors.Is(err, services.ErrInvalidMediaType),
		errors.Is(err, openverse.ErrUnsupportedMediaType):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, openverse.ErrSuperseded):
		writeError(w, http.StatusTooManyRequests, "request superseded by a newer one, retry")
	case errors.Is(err, openverse.ErrAuthentication):
		writeError(w, http.StatusBadGateway, "upstream authentication failed")
	case errors.As(err, &uerr):
		msg := uerr.Detail
		if msg == "" {
			msg = "upstream request failed"
		}
		writeError(w, uerr.StatusCode, msg)
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
