package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/models"
	"github.com/skillswap/backend/internal/services"
	"github.com/skillswap/backend/internal/validation"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, name, email, password string, location *string) (*models.UserDB, *services.TokenPair, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Display name
	// required: true
	// example: John Doe
	Name string `json:"name"`

	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: Password123
	Password string `json:"password"`

	// Location
	// example: New York, NY
	Location *string `json:"location,omitempty"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success message
	// example: User registered successfully
	Message string `json:"message"`

	// Created account's public fields
	User models.PublicUser `json:"user"`

	// Access token
	AccessToken string `json:"access_token"`

	// Refresh token
	RefreshToken string `json:"refresh_token"`
}

// ValidationErrorResponse represents a validation failure with field details
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	// Field-level violations
	Details []validation.FieldError `json:"details"`
}

// ErrorResponse represents a generic error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Email already registered
	Message string `json:"message"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Validates the payload, creates the account with its reputation, credit balance, and social stats records atomically, and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation failed"
// @Failure 409 {object} handlers.ErrorResponse "Email already registered"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /api/auth/register [post]
func NewRegisterHandler(validator *validation.Validator, svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{
				Details: []validation.FieldError{{Field: "", Msg: "invalid request body"}},
			})
			return
		}

		input, violations := validator.ValidateRegistration(validation.RegistrationInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Location: req.Location,
		})
		if violations != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{Details: violations})
			return
		}

		user, tokens, err := svc.Register(r.Context(), input.Name, input.Email, input.Password, input.Location)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmailTaken):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(ErrorResponse{
					Message: "Email already registered",
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

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(RegisterResponse{
			Message:      "User registered successfully",
			User:         user.Public(),
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		})
	}
}
