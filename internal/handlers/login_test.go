package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kvng-HackSOC/mediadev/internal/handlers"
	"github.com/Kvng-HackSOC/mediadev/internal/models"
	"github.com/Kvng-HackSOC/mediadev/internal/services"
)

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *handlers.MockLoginer)
		wantStatus int
	}{
		{
			name: "success",
			body: `{"username":"john_doe","password":"secret12345"}`,
			setupMock: func(m *handlers.MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john_doe", "secret12345").
					Return("token123", &models.UserDB{UserID: uuid.New(), Username: "john_doe"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			body: `{"username":"john_doe","password":"nope"}`,
			setupMock: func(m *handlers.MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", nil, services.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown user",
			body: `{"username":"ghost","password":"secret12345"}`,
			setupMock: func(m *handlers.MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", nil, services.ErrUserDoesNotExist)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "disabled account",
			body: `{"username":"john_doe","password":"secret12345"}`,
			setupMock: func(m *handlers.MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", nil, services.ErrUserDisabled)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "malformed body",
			body:       `{`,
			setupMock:  func(m *handlers.MockLoginer) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := handlers.NewMockLoginer(ctrl)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handlers.NewLoginHandler(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				var resp handlers.LoginResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "token123", resp.Token)
				require.NotNil(t, resp.User)
			}
		})
	}
}
