package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MediaStatsProvider defines the upstream operation this handler
// proxies.
type MediaStatsProvider interface {
	GetStats(ctx context.Context, mediaType string) (json.RawMessage, error)
}

// NewMediaStatsHandler returns an HTTP handler for aggregate media
// statistics.
// @Summary Media statistics
// @Description Passes through the upstream's per-source statistics for a media type.
// @Tags media
// @Produce json
// @Param type path string true "image | audio"
// @Success 200 {object} object "Upstream statistics"
// @Failure 400 {object} handlers.ErrorResponse "Unsupported media type"
// @Router /media/{type}/stats [get]
func NewMediaStatsHandler(svc MediaStatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaType := chi.URLParam(r, "type")

		body, err := svc.GetStats(r.Context(), mediaType)
		if err != nil {
			writeSearchError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}
