package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/skillswap/backend/internal/middlewares"
	"github.com/skillswap/backend/internal/models"
	"github.com/skillswap/backend/internal/services"
)

func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBuffer(body))
	return req.WithContext(middlewares.SetUserIDToContext(req.Context(), userID))
}

func TestCreateSwapHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	partnerID := uuid.New()

	tests := []struct {
		name         string
		reqBody      CreateSwapRequest
		mockSetup    func(m *MockSwapper)
		expectedCode int
	}{
		{
			name:    "success",
			reqBody: CreateSwapRequest{PartnerID: partnerID, OfferedSkill: "Guitar", WantedSkill: "Spanish", Credits: 10},
			mockSetup: func(m *MockSwapper) {
				m.EXPECT().
					Create(gomock.Any(), userID, partnerID, "Guitar", "Spanish", 10.0).
					Return(&models.SwapDB{SwapID: uuid.New(), Status: models.SwapPending}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:    "self swap",
			reqBody: CreateSwapRequest{PartnerID: userID, OfferedSkill: "Guitar", WantedSkill: "Spanish"},
			mockSetup: func(m *MockSwapper) {
				m.EXPECT().
					Create(gomock.Any(), userID, userID, "Guitar", "Spanish", 0.0).
					Return(nil, services.ErrSelfSwap)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "partner not found",
			reqBody: CreateSwapRequest{PartnerID: partnerID, OfferedSkill: "Guitar", WantedSkill: "Spanish"},
			mockSetup: func(m *MockSwapper) {
				m.EXPECT().
					Create(gomock.Any(), userID, partnerID, "Guitar", "Spanish", 0.0).
					Return(nil, services.ErrPartnerNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockSwapper(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewCreateSwapHandler(mockSvc)

			bodyBytes, _ := json.Marshal(tt.reqBody)
			req := authedRequest(http.MethodPost, "/api/swaps", bodyBytes, userID)

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestSwapActionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	swapID := uuid.New()

	tests := []struct {
		name         string
		actionErr    error
		expectedCode int
	}{
		{"accepted", nil, http.StatusOK},
		{"not found", services.ErrSwapNotFound, http.StatusNotFound},
		{"not a participant", services.ErrNotParticipant, http.StatusForbidden},
		{"wrong state", services.ErrInvalidTransition, http.StatusConflict},
		{"insufficient credits", services.ErrInsufficientCredits, http.StatusPaymentRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockSwapper(ctrl)
			mockSvc.EXPECT().Accept(gomock.Any(), userID, swapID).Return(tt.actionErr)

			r := chi.NewRouter()
			r.Post("/api/swaps/{id}/accept", NewSwapActionHandler(mockSvc.Accept, "Swap accepted"))

			req := authedRequest(http.MethodPost, "/api/swaps/"+swapID.String()+"/accept", nil, userID)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}

	t.Run("invalid swap id", func(t *testing.T) {
		mockSvc := NewMockSwapper(ctrl)

		r := chi.NewRouter()
		r.Post("/api/swaps/{id}/accept", NewSwapActionHandler(mockSvc.Accept, "Swap accepted"))

		req := authedRequest(http.MethodPost, "/api/swaps/not-a-uuid/accept", nil, userID)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRateSwapHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	swapID := uuid.New()

	tests := []struct {
		name         string
		score        int
		rateErr      error
		expectedCode int
	}{
		{"rating recorded", 5, nil, http.StatusOK},
		{"score out of range", 9, services.ErrInvalidRating, http.StatusBadRequest},
		{"already rated", 4, services.ErrAlreadyRated, http.StatusConflict},
		{"swap not completed", 4, services.ErrInvalidTransition, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockSwapper(ctrl)
			mockSvc.EXPECT().Rate(gomock.Any(), userID, swapID, tt.score).Return(tt.rateErr)

			r := chi.NewRouter()
			r.Post("/api/swaps/{id}/rating", NewRateSwapHandler(mockSvc))

			bodyBytes, _ := json.Marshal(RateSwapRequest{Score: tt.score})
			req := authedRequest(http.MethodPost, "/api/swaps/"+swapID.String()+"/rating", bodyBytes, userID)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestListSwapsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("empty list encodes as empty array", func(t *testing.T) {
		mockSvc := NewMockSwapper(ctrl)
		mockSvc.EXPECT().List(gomock.Any(), userID).Return(nil, nil)

		handler := NewListSwapsHandler(mockSvc)
		req := authedRequest(http.MethodGet, "/api/swaps", nil, userID)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})
}
