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
	"github.com/skillswap/backend/internal/validation"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	validator := validation.New()
	userID := uuid.New()

	tests := []struct {
		name         string
		reqBody      RegisterRequest
		rawBody      string
		mockSetup    func(m *MockRegisterer)
		expectedCode int
		checkBody    func(t *testing.T, body []byte)
	}{
		{
			name:    "success",
			reqBody: RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "Password123"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "John Doe", "john@example.com", "Password123", gomock.Nil()).
					Return(
						&models.UserDB{UserID: userID, Name: "John Doe", Email: "john@example.com"},
						&services.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
						nil,
					)
			},
			expectedCode: http.StatusCreated,
			checkBody: func(t *testing.T, body []byte) {
				var resp RegisterResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "User registered successfully", resp.Message)
				assert.Equal(t, userID, resp.User.UserID)
				assert.Equal(t, "access", resp.AccessToken)
				assert.Equal(t, "refresh", resp.RefreshToken)
			},
		},
		{
			name:    "name is trimmed before the service sees it",
			reqBody: RegisterRequest{Name: "  John Doe  ", Email: "john@example.com", Password: "Password123"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "John Doe", "john@example.com", "Password123", gomock.Nil()).
					Return(
						&models.UserDB{UserID: userID},
						&services.TokenPair{AccessToken: "a", RefreshToken: "r"},
						nil,
					)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "password without uppercase",
			reqBody:      RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "password123"},
			expectedCode: http.StatusBadRequest,
			checkBody: func(t *testing.T, body []byte) {
				var resp ValidationErrorResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, []validation.FieldError{
					{Field: "password", Msg: "Password must contain at least one uppercase letter"},
				}, resp.Details)
			},
		},
		{
			name:         "password without digit",
			reqBody:      RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "PasswordABC"},
			expectedCode: http.StatusBadRequest,
			checkBody: func(t *testing.T, body []byte) {
				var resp ValidationErrorResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, []validation.FieldError{
					{Field: "password", Msg: "Password must contain at least one number"},
				}, resp.Details)
			},
		},
		{
			name:         "short password reports length first",
			reqBody:      RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "123"},
			expectedCode: http.StatusBadRequest,
			checkBody: func(t *testing.T, body []byte) {
				var resp ValidationErrorResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "Password must be at least 8 characters long", resp.Details[0].Msg)
			},
		},
		{
			name:         "invalid email",
			reqBody:      RegisterRequest{Name: "John Doe", Email: "not-an-email", Password: "Password123"},
			expectedCode: http.StatusBadRequest,
			checkBody: func(t *testing.T, body []byte) {
				var resp ValidationErrorResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, []validation.FieldError{
					{Field: "email", Msg: "Please provide a valid email address"},
				}, resp.Details)
			},
		},
		{
			name:    "email already registered",
			reqBody: RegisterRequest{Name: "John Doe", Email: "taken@example.com", Password: "Password123"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "John Doe", "taken@example.com", "Password123", gomock.Nil()).
					Return(nil, nil, services.ErrEmailTaken)
			},
			expectedCode: http.StatusConflict,
			checkBody: func(t *testing.T, body []byte) {
				var resp ErrorResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "Email already registered", resp.Message)
			},
		},
		{
			name:    "internal server error",
			reqBody: RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "Password123"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "John Doe", "john@example.com", "Password123", gomock.Nil()).
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
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRegisterHandler(validator, mockSvc)

			var req *http.Request
			if tt.rawBody != "" {
				req = httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(tt.rawBody))
			} else {
				bodyBytes, _ := json.Marshal(tt.reqBody)
				req = httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(bodyBytes))
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
