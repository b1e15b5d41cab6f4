package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MediaDetailProvider defines the upstream operation this handler
// proxies.
type MediaDetailProvider interface {
	GetMediaDetail(ctx context.Context, mediaType, id string) (json.RawMessage, error)
}

// NewMediaDetailHandler returns an HTTP handler for media item detail.
// @Summary Media detail
// @Description Passes through a single media item from the upstream API.
// @Tags media
// @Produce json
// @Param type path string true "image | audio"
// @Param id path string true "Media identifier"
// @Success 200 {object} object "Upstream media detail"
// @Failure 400 {object} handlers.ErrorResponse "Unsupported media type"
// @Failure 404 {object} handlers.ErrorResponse "Media item not found"
// @Router /media/{type}/{id} [get]
func NewMediaDetailHandler(svc MediaDetailProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaType := chi.URLParam(r, "type")
		id := chi.URLParam(r, "id")

		body, err := svc.GetMediaDetail(r.Context(), mediaType, id)
		if err != nil {
			writeSearchError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}
