package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/middlewares"
)

// Balancer defines the interface that the credit service must implement.
type Balancer interface {
	Balance(ctx context.Context, userID uuid.UUID) (float64, error)
}

// BalanceResponse represents a credit balance response
// swagger:model BalanceResponse
type BalanceResponse struct {
	// Current credit balance
	// example: 25
	Balance float64 `json:"balance"`
}

// NewGetBalanceHandler returns an HTTP handler serving the caller's credit balance.
// @Summary Get credit balance
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.BalanceResponse "Balance returned"
// @Router /api/credits/balance [get]
func NewGetBalanceHandler(svc Balancer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		balance, err := svc.Balance(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(BalanceResponse{Balance: balance})
	}
}
