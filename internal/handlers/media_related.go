package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RelatedMediaProvider defines the upstream operation this handler
// proxies.
type RelatedMediaProvider interface {
	GetRelatedMedia(ctx context.Context, mediaType, id string) (json.RawMessage, error)
}

// NewRelatedMediaHandler returns an HTTP handler for related media.
// @Summary Related media
// @Description Passes through the upstream's related-media list for an item.
// @Tags media
// @Produce json
// @Param type path string true "image | audio"
// @Param id path string true "Media identifier"
// @Success 200 {object} object "Upstream related media"
// @Failure 400 {object} handlers.ErrorResponse "Unsupported media type"
// @Failure 404 {object} handlers.ErrorResponse "Media item not found"
// @Router /media/{type}/{id}/related [get]
func NewRelatedMediaHandler(svc RelatedMediaProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaType := chi.URLParam(r, "type")
		id := chi.URLParam(r, "id")

		body, err := svc.GetRelatedMedia(r.Context(), mediaType, id)
		if err != nil {
			writeSearchError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}
