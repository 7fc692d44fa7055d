package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/models"
)

// ErrUserNotFound is returned when the requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ProfileReader reads a user's aggregated profile.
type ProfileReader interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

// SkillLister lists a user's skills.
type SkillLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SkillDB, error)
}

// ProfileService serves profile reads and updates.
type ProfileService struct {
	profiles ProfileReader
	skills   SkillLister
	writer   UserWriter
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(profiles ProfileReader, skills SkillLister, writer UserWriter) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		skills:   skills,
		writer:   writer,
	}
}

// Get returns the caller's own profile, including email.
func (svc *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := svc.profiles.GetProfile(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get profile", "err", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}
	return profile, nil
}

// GetPublic returns another user's profile with the email removed and their
// skills attached.
func (svc *ProfileService) GetPublic(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := svc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	skills, err := svc.skills.ListByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list skills", "err", err)
		return nil, err
	}

	profile.User.Email = ""
	profile.Skills = skills
	return profile, nil
}

// Update applies a validated profile update and returns the updated user.
func (svc *ProfileService) Update(ctx context.Context, userID uuid.UUID, name, location *string) (*models.UserDB, error) {
	user, err := svc.writer.Update(ctx, userID, name, location)
	if err != nil {
		logger.Log.Errorw("failed to update user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
