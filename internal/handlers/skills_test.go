package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/skillswap/backend/internal/models"
	"github.com/skillswap/backend/internal/services"
)

func TestAddSkillHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name         string
		reqBody      AddSkillRequest
		mockSetup    func(m *MockSkiller)
		expectedCode int
	}{
		{
			name:    "success",
			reqBody: AddSkillRequest{Name: "Guitar", Category: "Music", Kind: "offered"},
			mockSetup: func(m *MockSkiller) {
				m.EXPECT().
					Add(gomock.Any(), userID, "Guitar", "Music", "offered").
					Return(&models.SkillDB{SkillID: uuid.New(), Name: "Guitar"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:    "invalid kind",
			reqBody: AddSkillRequest{Name: "Guitar", Category: "Music", Kind: "teaching"},
			mockSetup: func(m *MockSkiller) {
				m.EXPECT().
					Add(gomock.Any(), userID, "Guitar", "Music", "teaching").
					Return(nil, services.ErrInvalidSkill)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockSkiller(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewAddSkillHandler(mockSvc)

			bodyBytes, _ := json.Marshal(tt.reqBody)
			req := authedRequest(http.MethodPost, "/api/skills", bodyBytes, userID)
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestRemoveSkillHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	skillID := uuid.New()

	tests := []struct {
		name         string
		removeErr    error
		expectedCode int
	}{
		{"removed", nil, http.StatusNoContent},
		{"not found", services.ErrSkillNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockSkiller(ctrl)
			mockSvc.EXPECT().Remove(gomock.Any(), skillID, userID).Return(tt.removeErr)

			r := chi.NewRouter()
			r.Delete("/api/skills/{id}", NewRemoveSkillHandler(mockSvc))

			req := authedRequest(http.MethodDelete, "/api/skills/"+skillID.String(), nil, userID)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestSearchHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("query params forwarded", func(t *testing.T) {
		mockSvc := NewMockSearcher(ctrl)
		mockSvc.EXPECT().
			Search(gomock.Any(), "guitar", "Music", 2, 10).
			Return([]models.SearchResult{{UserID: uuid.New(), SkillName: "Guitar"}}, nil)

		handler := NewSearchHandler(mockSvc)
		req := httptest.NewRequest(http.MethodGet, "/api/discovery/search?q=guitar&category=Music&page=2&page_size=10", nil)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp SearchResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Page)
		assert.Len(t, resp.Results, 1)
	})

	t.Run("no matches encodes as empty array", func(t *testing.T) {
		mockSvc := NewMockSearcher(ctrl)
		mockSvc.EXPECT().Search(gomock.Any(), "", "", 1, 0).Return(nil, nil)

		handler := NewSearchHandler(mockSvc)
		req := httptest.NewRequest(http.MethodGet, "/api/discovery/search", nil)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp SearchResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotNil(t, resp.Results)
		assert.Empty(t, resp.Results)
	})
}

func TestGetBalanceHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	mockSvc := NewMockBalancer(ctrl)
	mockSvc.EXPECT().Balance(gomock.Any(), userID).Return(42.5, nil)

	handler := NewGetBalanceHandler(mockSvc)
	req := authedRequest(http.MethodGet, "/api/credits/balance", nil, userID)
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp BalanceResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 42.5, resp.Balance)
}
