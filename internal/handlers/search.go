package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/Kvng-HackSOC/mediadev/internal/middlewares"
	"github.com/Kvng-HackSOC/mediadev/internal/models"
	"github.com/Kvng-HackSOC/mediadev/internal/services"
)

// Searcher defines the interface that the search service must
// implement.
type Searcher interface {
	Search(ctx context.Context, userID *uuid.UUID, p services.SearchParams) (*models.SearchResult, error)
}

// reservedSearchParams are handled explicitly; everything else in the
// query string is treated as an upstream filter.
var reservedSearchParams = map[string]bool{
	"q":          true,
	"page":       true,
	"page_size":  true,
	"media_type": true,
}

// NewSearchHandler returns an HTTP handler for media search.
// @Summary Search media
// @Description Proxies a search to the upstream media API. media_type "all" merges concurrent image and audio searches. Authenticated searches are recorded in history.
// @Tags search
// @Produce json
// @Param q query string true "Free-text query"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param media_type query string false "image | audio | all" default(image)
// @Success 200 {object} models.SearchResult "Search results"
// @Failure 400 {object} handlers.ErrorResponse "Invalid parameters"
// @Failure 429 {object} handlers.ErrorResponse "Superseded by a newer request"
// @Router /search [get]
func NewSearchHandler(svc Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		params := services.SearchParams{
			Query:     q.Get("q"),
			MediaType: q.Get("media_type"),
			Filters:   map[string]string{},
		}

		var err error
		if raw := q.Get("page"); raw != "" {
			if params.Page, err = strconv.Atoi(raw); err != nil || params.Page < 1 {
				writeError(w, http.StatusBadRequest, "page must be a positive integer")
				return
			}
		}
		if raw := q.Get("page_size"); raw != "" {
			if params.PageSize, err = strconv.Atoi(raw); err != nil || params.PageSize < 1 {
				writeError(w, http.StatusBadRequest, "page_size must be a positive integer")
				return
			}
		}

		for name, values := range q {
			if reservedSearchParams[name] || len(values) == 0 {
				continue
			}
			params.Filters[name] = values[0]
		}

		var userID *uuid.UUID
		if user := middlewares.GetUserFromContext(r.Context()); user != nil {
			userID = &user.UserID
		}

		result, err := svc.Search(r.Context(), userID, params)
		if err != nil {
			writeSearchError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
