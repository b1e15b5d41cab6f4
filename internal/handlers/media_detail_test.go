package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kvng-HackSOC/mediadev/internal/handlers"
	"github.com/Kvng-HackSOC/mediadev/internal/openverse"
)

func TestMediaDetailHandler(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setupMock  func(m *handlers.MockMediaDetailProvider)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "passthrough",
			target: "/media/image/abc-123",
			setupMock: func(m *handlers.MockMediaDetailProvider) {
				m.EXPECT().
					GetMediaDetail(gomock.Any(), "image", "abc-123").
					Return(json.RawMessage(`{"id":"abc-123","title":"cat"}`), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"id":"abc-123","title":"cat"}`,
		},
		{
			name:   "not found upstream",
			target: "/media/audio/missing",
			setupMock: func(m *handlers.MockMediaDetailProvider) {
				m.EXPECT().
					GetMediaDetail(gomock.Any(), "audio", "missing").
					Return(nil, &openverse.UpstreamError{StatusCode: http.StatusNotFound, Detail: "Not found."})
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "unsupported media type",
			target: "/media/video/abc-123",
			setupMock: func(m *handlers.MockMediaDetailProvider) {
				m.EXPECT().
					GetMediaDetail(gomock.Any(), "video", "abc-123").
					Return(nil, openverse.ErrUnsupportedMediaType)
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := handlers.NewMockMediaDetailProvider(ctrl)
			tt.setupMock(svc)

			router := chi.NewRouter()
			router.Get("/media/{type}/{id}", handlers.NewMediaDetailHandler(svc))

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestMediaStatsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := handlers.NewMockMediaStatsProvider(ctrl)
	svc.EXPECT().
		GetStats(gomock.Any(), "image").
		Return(json.RawMessage(`[{"source_name":"flickr","media_count":100}]`), nil)

	router := chi.NewRouter()
	router.Get("/media/{type}/stats", handlers.NewMediaStatsHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/media/image/stats", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"source_name":"flickr","media_count":100}]`, rec.Body.String())
}

func TestRelatedMediaHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := handlers.NewMockRelatedMediaProvider(ctrl)
	svc.EXPECT().
		GetRelatedMedia(gomock.Any(), "image", "abc-123").
		Return(json.RawMessage(`{"result_count":2,"results":[]}`), nil)

	router := chi.NewRouter()
	router.Get("/media/{type}/{id}/related", handlers.NewRelatedMediaHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/media/image/abc-123/related", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result_count":2,"results":[]}`, rec.Body.String())
}
