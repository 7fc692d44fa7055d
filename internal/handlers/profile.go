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
	"github.com/skillswap/backend/internal/validation"
)

// Profiler defines the interface that the profile service must implement.
type Profiler interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	GetPublic(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, name, location *string) (*models.UserDB, error)
}

// UpdateProfileRequest represents the JSON body for a profile update
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	// Display name
	// example: Jane Doe
	Name *string `json:"name,omitempty"`

	// Location
	// example: Berlin
	Location *string `json:"location,omitempty"`
}

// NewGetMeHandler returns an HTTP handler serving the caller's profile.
// @Summary Get own profile
// @Description Returns the authenticated user's account, reputation, credit balance, and social stats
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Profile "Profile returned"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /api/users/me [get]
func NewGetMeHandler(svc Profiler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		profile, err := svc.Get(r.Context(), userID)
		if err != nil {
			writeProfileError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(profile)
	}
}

// NewUpdateMeHandler returns an HTTP handler updating the caller's profile.
// @Summary Update own profile
// @Description Updates name and/or location after validation
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.PublicUser "Updated user returned"
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation failed"
// @Router /api/users/me [put]
func NewUpdateMeHandler(validator *validation.Validator, svc Profiler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{
				Details: []validation.FieldError{{Field: "", Msg: "invalid request body"}},
			})
			return
		}

		input, violations := validator.ValidateProfileUpdate(validation.ProfileUpdateInput{
			Name:     req.Name,
			Location: req.Location,
		})
		if violations != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{Details: violations})
			return
		}

		user, err := svc.Update(r.Context(), userID, input.Name, input.Location)
		if err != nil {
			writeProfileError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(user.Public())
	}
}

// NewGetUserHandler returns an HTTP handler serving another user's public profile.
// @Summary Get a public profile
// @Description Returns a user's public profile with reputation, stats, and skills; the email is omitted
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.Profile "Profile returned"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /api/users/{id} [get]
func NewGetUserHandler(svc Profiler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid user id"})
			return
		}

		profile, err := svc.GetPublic(r.Context(), userID)
		if err != nil {
			writeProfileError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(profile)
	}
}

func writeProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Message: "User not found"})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Message: "Internal server error"})
	}
}
