package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kvng-HackSOC/mediadev/internal/handlers"
	"github.com/Kvng-HackSOC/mediadev/internal/middlewares"
	"github.com/Kvng-HackSOC/mediadev/internal/models"
	"github.com/Kvng-HackSOC/mediadev/internal/openverse"
	"github.com/Kvng-HackSOC/mediadev/internal/services"
)

func TestSearchHandler_ParamParsing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := handlers.NewMockSearcher(ctrl)

	var got services.SearchParams
	svc.EXPECT().
		Search(gomock.Any(), gomock.Nil(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *uuid.UUID, p services.SearchParams) (*models.SearchResult, error) {
			got = p
			return &models.SearchResult{ResultCount: 1, PageCount: 1, Results: []json.RawMessage{json.RawMessage(`{"id":"a"}`)}}, nil
		})

	target := "/search?q=cats&page=2&page_size=10&media_type=audio&license_type=commercial&source=flickr"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	handlers.NewSearchHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cats", got.Query)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 10, got.PageSize)
	assert.Equal(t, "audio", got.MediaType)
	assert.Equal(t, map[string]string{"license_type": "commercial", "source": "flickr"}, got.Filters)
}

func TestSearchHandler_AuthenticatedUserForwarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	svc := handlers.NewMockSearcher(ctrl)

	var gotUserID *uuid.UUID
	svc.EXPECT().
		Search(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id *uuid.UUID, _ services.SearchParams) (*models.SearchResult, error) {
			gotUserID = id
			return &models.SearchResult{}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/search?q=cats", nil)
	ctx := middlewares.WithIdentity(req.Context(), &models.UserDB{UserID: userID, IsActive: true}, "token")
	rec := httptest.NewRecorder()

	handlers.NewSearchHandler(svc).ServeHTTP(rec, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUserID)
	assert.Equal(t, userID, *gotUserID)
}

func TestSearchHandler_InvalidPaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := handlers.NewMockSearcher(ctrl)

	for _, target := range []string{
		"/search?q=cats&page=zero",
		"/search?q=cats&page=0",
		"/search?q=cats&page_size=-5",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()

		handlers.NewSearchHandler(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestSearchHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"empty query", services.ErrEmptyQuery, http.StatusBadRequest},
		{"bad media type", services.ErrInvalidMediaType, http.StatusBadRequest},
		{"superseded", openverse.ErrSuperseded, http.StatusTooManyRequests},
		{"upstream auth", openverse.ErrAuthentication, http.StatusBadGateway},
		{"upstream error", &openverse.UpstreamError{StatusCode: http.StatusServiceUnavailable, Detail: "down"}, http.StatusServiceUnavailable},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := handlers.NewMockSearcher(ctrl)
			svc.EXPECT().
				Search(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/search?q=cats", nil)
			rec := httptest.NewRecorder()

			handlers.NewSearchHandler(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Error.Status)
		})
	}
}
