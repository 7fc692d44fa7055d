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

// Skiller defines the interface that the skill service must implement.
type Skiller interface {
	Add(ctx context.Context, userID uuid.UUID, name, category, kind string) (*models.SkillDB, error)
	Remove(ctx context.Context, skillID, userID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]models.SkillDB, error)
}

// AddSkillRequest represents the JSON body for adding a skill
// swagger:model AddSkillRequest
type AddSkillRequest struct {
	// Skill name
	// required: true
	// example: Guitar
	Name string `json:"name"`

	// Skill category
	// required: true
	// example: Music
	Category string `json:"category"`

	// Kind: offered or wanted
	// required: true
	// example: offered
	Kind string `json:"kind"`
}

// NewAddSkillHandler returns an HTTP handler that records a skill for the caller.
// @Summary Add a skill
// @Tags skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param addSkillRequest body handlers.AddSkillRequest true "Skill to add"
// @Success 201 {object} models.SkillDB "Skill created"
// @Failure 400 {object} handlers.ErrorResponse "Invalid skill"
// @Router /api/skills [post]
func NewAddSkillHandler(svc Skiller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		var req AddSkillRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid request body"})
			return
		}

		skill, err := svc.Add(r.Context(), userID, req.Name, req.Category, req.Kind)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidSkill):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{Message: "Skill name, category, and kind (offered or wanted) are required"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Message: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(skill)
	}
}

// NewRemoveSkillHandler returns an HTTP handler that deletes a caller-owned skill.
// @Summary Remove a skill
// @Tags skills
// @Produce json
// @Security BearerAuth
// @Param id path string true "Skill ID"
// @Success 204 "Skill removed"
// @Failure 404 {object} handlers.ErrorResponse "Skill not found"
// @Router /api/skills/{id} [delete]
func NewRemoveSkillHandler(svc Skiller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		skillID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid skill id"})
			return
		}

		if err := svc.Remove(r.Context(), skillID, userID); err != nil {
			switch {
			case errors.Is(err, services.ErrSkillNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{Message: "Skill not found"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Message: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// NewListSkillsHandler returns an HTTP handler listing a user's skills.
// @Summary List a user's skills
// @Tags skills
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {array} models.SkillDB "Skills returned"
// @Router /api/users/{id}/skills [get]
func NewListSkillsHandler(svc Skiller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid user id"})
			return
		}

		skills, err := svc.List(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(skills)
	}
}
