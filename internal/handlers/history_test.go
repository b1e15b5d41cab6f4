package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kvng-HackSOC/mediadev/internal/handlers"
	"github.com/Kvng-HackSOC/mediadev/internal/middlewares"
	"github.com/Kvng-HackSOC/mediadev/internal/models"
	"github.com/Kvng-HackSOC/mediadev/internal/services"
)

func authedRequest(method, target string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := middlewares.WithIdentity(req.Context(), &models.UserDB{UserID: userID, IsActive: true}, "token")
	return req.WithContext(ctx)
}

func TestHistoryListHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	entries := []models.SearchHistoryDB{
		{
			ID:        uuid.New(),
			UserID:    userID,
			Query:     "cats",
			MediaType: models.MediaTypeImage,
			CreatedAt: time.Now(),
		},
	}

	svc := handlers.NewMockHistoryLister(ctrl)
	svc.EXPECT().
		List(gomock.Any(), userID, 2, 10).
		Return(entries, int64(11), nil)

	rec := httptest.NewRecorder()
	handlers.NewHistoryListHandler(svc).ServeHTTP(rec, authedRequest(http.MethodGet, "/history?page=2&page_size=10", userID))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.HistoryListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(11), resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "cats", resp.Results[0].Query)
}

func TestHistoryListHandler_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := handlers.NewMockHistoryLister(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()

	handlers.NewHistoryListHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHistoryDeleteHandler(t *testing.T) {
	userID := uuid.New()
	entryID := uuid.New()

	tests := []struct {
		name       string
		target     string
		setupMock  func(m *handlers.MockHistoryDeleter)
		wantStatus int
	}{
		{
			name:   "success",
			target: "/history/" + entryID.String(),
			setupMock: func(m *handlers.MockHistoryDeleter) {
				m.EXPECT().
					Delete(gomock.Any(), userID, entryID).
					Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "not found",
			target: "/history/" + entryID.String(),
			setupMock: func(m *handlers.MockHistoryDeleter) {
				m.EXPECT().
					Delete(gomock.Any(), userID, entryID).
					Return(services.ErrHistoryNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid id",
			target:     "/history/not-a-uuid",
			setupMock:  func(m *handlers.MockHistoryDeleter) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "repository failure",
			target: "/history/" + entryID.String(),
			setupMock: func(m *handlers.MockHistoryDeleter) {
				m.EXPECT().
					Delete(gomock.Any(), userID, entryID).
					Return(assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := handlers.NewMockHistoryDeleter(ctrl)
			tt.setupMock(svc)

			router := chi.NewRouter()
			router.Delete("/history/{id}", handlers.NewHistoryDeleteHandler(svc))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest(http.MethodDelete, tt.target, userID))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHistoryClearHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	svc := handlers.NewMockHistoryClearer(ctrl)
	svc.EXPECT().
		Clear(gomock.Any(), userID).
		Return(int64(17), nil)

	rec := httptest.NewRecorder()
	handlers.NewHistoryClearHandler(svc).ServeHTTP(rec, authedRequest(http.MethodDelete, "/history", userID))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.HistoryClearResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(17), resp.DeletedCount)
}
