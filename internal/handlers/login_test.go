package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/skillswap/backend/internal/models"
	"github.com/skillswap/backend/internal/services"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name         string
		reqBody      LoginRequest
		rawBody      string
		mockSetup    func(m *MockLoginer)
		expectedCode int
		checkBody    func(t *testing.T, body []byte)
	}{
		{
			name:    "success",
			reqBody: LoginRequest{Email: "john@example.com", Password: "Password123"},
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john@example.com", "Password123").
					Return(
						&models.UserDB{UserID: userID, Email: "john@example.com"},
						&services.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
						nil,
					)
			},
			expectedCode: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var resp LoginResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, userID, resp.User.UserID)
				assert.Equal(t, "access", resp.AccessToken)
				assert.Equal(t, "refresh", resp.RefreshToken)
			},
		},
		{
			name:    "invalid credentials",
			reqBody: LoginRequest{Email: "john@example.com", Password: "WrongPass1"},
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john@example.com", "WrongPass1").
					Return(nil, nil, services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			checkBody: func(t *testing.T, body []byte) {
				var resp ErrorResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "Invalid email or password", resp.Message)
			},
		},
		{
			name:    "internal server error",
			reqBody: LoginRequest{Email: "john@example.com", Password: "Password123"},
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john@example.com", "Password123").
					Return(nil, nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "invalid json",
			rawBody:      "{invalid json}",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLoginer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewLoginHandler(mockSvc)

			var req *http.Request
			if tt.rawBody != "" {
				req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.rawBody))
			} else {
				bodyBytes, _ := json.Marshal(tt.reqBody)
				req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(bodyBytes))
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.checkBody != nil {
				tt.checkBody(t, rr.Body.Bytes())
			}
		})
	}
}

func TestRefreshHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		reqBody      RefreshRequest
		mockSetup    func(m *MockRefresher)
		expectedCode int
	}{
		{
			name:    "success",
			reqBody: RefreshRequest{RefreshToken: "good-token"},
			mockSetup: func(m *MockRefresher) {
				m.EXPECT().
					Refresh(gomock.Any(), "good-token").
					Return(&services.TokenPair{AccessToken: "access2", RefreshToken: "refresh2"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "invalid refresh token",
			reqBody: RefreshRequest{RefreshToken: "bad-token"},
			mockSetup: func(m *MockRefresher) {
				m.EXPECT().
					Refresh(gomock.Any(), "bad-token").
					Return(nil, services.ErrInvalidRefreshToken)
			},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRefresher(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewRefreshHandler(mockSvc)

			bodyBytes, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", bytes.NewBuffer(bodyBytes))

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
