package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/middlewares"
	"github.com/skillswap/backend/internal/models"
	"github.com/skillswap/backend/internal/services"
)

// Swapper defines the interface that the swap service must implement.
type Swapper interface {
	Create(ctx context.Context, requesterID, partnerID uuid.UUID, offeredSkill, wantedSkill string, credits float64) (*models.SwapDB, error)
	Accept(ctx context.Context, userID, swapID uuid.UUID) error
	Reject(ctx context.Context, userID, swapID uuid.UUID) error
	Complete(ctx context.Context, userID, swapID uuid.UUID) error
	Rate(ctx context.Context, raterID, swapID uuid.UUID, score int) error
	List(ctx context.Context, userID uuid.UUID) ([]models.SwapDB, error)
}

// CreateSwapRequest represents the JSON body for opening a swap
// swagger:model CreateSwapRequest
type CreateSwapRequest struct {
	// Partner user ID
	// required: true
	PartnerID uuid.UUID `json:"partner_id"`

	// Skill the requester offers
	// required: true
	// example: Guitar
	OfferedSkill string `json:"offered_skill"`

	// Skill the requester wants
	// required: true
	// example: Spanish
	WantedSkill string `json:"wanted_skill"`

	// Credits the requester pays on completion
	// example: 10
	Credits float64 `json:"credits"`
}

// RateSwapRequest represents the JSON body for rating a completed swap
// swagger:model RateSwapRequest
type RateSwapRequest struct {
	// Score from 1 to 5
	// required: true
	// example: 5
	Score int `json:"score"`
}

// NewCreateSwapHandler returns an HTTP handler that opens a swap request.
// @Summary Open a swap request
// @Tags swaps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createSwapRequest body handlers.CreateSwapRequest true "Swap request"
// @Success 201 {object} models.SwapDB "Swap created"
// @Failure 400 {object} handlers.ErrorResponse "Invalid swap request"
// @Failure 404 {object} handlers.ErrorResponse "Partner not found"
// @Router /api/swaps [post]
func NewCreateSwapHandler(svc Swapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		var req CreateSwapRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid request body"})
			return
		}

		swap, err := svc.Create(r.Context(), userID, req.PartnerID, req.OfferedSkill, req.WantedSkill, req.Credits)
		if err != nil {
			writeSwapError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(swap)
	}
}

// NewSwapActionHandler returns an HTTP handler for a swap lifecycle action
// (accept, reject, or complete).
// @Summary Act on a swap
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Param id path string true "Swap ID"
// @Success 200 {object} handlers.ErrorResponse "Action applied"
// @Failure 403 {object} handlers.ErrorResponse "Not a participant"
// @Failure 409 {object} handlers.ErrorResponse "Invalid state for this action"
// @Router /api/swaps/{id}/accept [post]
func NewSwapActionHandler(action func(ctx context.Context, userID, swapID uuid.UUID) error, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		swapID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid swap id"})
			return
		}

		if err := action(r.Context(), userID, swapID); err != nil {
			writeSwapError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ErrorResponse{Message: message})
	}
}

// NewRateSwapHandler returns an HTTP handler that rates a completed swap.
// @Summary Rate a completed swap
// @Tags swaps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Swap ID"
// @Param rateSwapRequest body handlers.RateSwapRequest true "Rating"
// @Success 200 {object} handlers.ErrorResponse "Rating recorded"
// @Failure 409 {object} handlers.ErrorResponse "Already rated or swap not completed"
// @Router /api/swaps/{id}/rating [post]
func NewRateSwapHandler(svc Swapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		swapID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid swap id"})
			return
		}

		var req RateSwapRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid request body"})
			return
		}

		if err := svc.Rate(r.Context(), userID, swapID, req.Score); err != nil {
			writeSwapError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ErrorResponse{Message: "Rating recorded"})
	}
}

// NewListSwapsHandler returns an HTTP handler listing the caller's swaps.
// @Summary List own swaps
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.SwapDB "Swaps returned"
// @Router /api/swaps [get]
func NewListSwapsHandler(svc Swapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		swaps, err := svc.List(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "Internal server error"})
			return
		}

		if swaps == nil {
			swaps = []models.SwapDB{}
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(swaps)
	}
}

func writeSwapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSwapNotFound), errors.Is(err, services.ErrPartnerNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrNotParticipant):
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrSelfSwap),
		errors.Is(err, services.ErrInvalidCreditAmount),
		errors.Is(err, services.ErrInvalidRating):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrAlreadyRated):
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrInsufficientCredits):
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(ErrorResponse{Message: err.Error()})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Message: "Internal server error"})
	}
}
