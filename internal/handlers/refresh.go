package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/services"
)

// Refresher defines the interface that the token refresh service must implement.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// RefreshRequest represents the JSON body for token refresh
// swagger:model RefreshRequest
type RefreshRequest struct {
	// Refresh token
	// required: true
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse represents a successful token refresh response
// swagger:model RefreshResponse
type RefreshResponse struct {
	// Access token
	AccessToken string `json:"access_token"`

	// Refresh token
	RefreshToken string `json:"refresh_token"`
}

// NewRefreshHandler returns an HTTP handler for token refresh.
// @Summary Refresh tokens
// @Description Exchange a valid refresh token for a fresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param refreshRequest body handlers.RefreshRequest true "Refresh Request"
// @Success 200 {object} handlers.RefreshResponse "Fresh token pair returned"
// @Failure 401 {object} handlers.ErrorResponse "Invalid refresh token"
// @Router /api/auth/refresh [post]
func NewRefreshHandler(svc Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Message: "invalid request body",
			})
			return
		}

		tokens, err := svc.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidRefreshToken):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(ErrorResponse{
					Message: "Invalid refresh token",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{
					Message: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(RefreshResponse{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		})
	}
}
