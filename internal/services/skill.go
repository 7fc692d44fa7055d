package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/models"
)

// Error variables
var (
	ErrSkillNotFound = errors.New("skill not found")
	ErrInvalidSkill  = errors.New("invalid skill")
)

// SkillWriter defines write operations for skills.
type SkillWriter interface {
	Save(ctx context.Context, userID uuid.UUID, name, category, kind string) (*models.SkillDB, error)
	Delete(ctx context.Context, skillID, userID uuid.UUID) (int64, error)
}

// SkillService manages a user's offered and wanted skills.
type SkillService struct {
	reader SkillLister
	writer SkillWriter
}

// NewSkillService creates a new SkillService instance.
func NewSkillService(reader SkillLister, writer SkillWriter) *SkillService {
	return &SkillService{
		reader: reader,
		writer: writer,
	}
}

// Add records a skill for the user. Kind must be offered or wanted.
func (svc *SkillService) Add(ctx context.Context, userID uuid.UUID, name, category, kind string) (*models.SkillDB, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" || category == "" {
		return nil, ErrInvalidSkill
	}
	if kind != models.SkillOffered && kind != models.SkillWanted {
		return nil, ErrInvalidSkill
	}

	skill, err := svc.writer.Save(ctx, userID, name, category, kind)
	if err != nil {
		logger.Log.Errorw("failed to save skill", "err", err)
		return nil, err
	}
	return skill, nil
}

// Remove deletes a skill owned by the user. Removing someone else's skill
// looks the same as removing a missing one.
func (svc *SkillService) Remove(ctx context.Context, skillID, userID uuid.UUID) error {
	affected, err := svc.writer.Delete(ctx, skillID, userID)
	if err != nil {
		logger.Log.Errorw("failed to delete skill", "err", err)
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

// List returns a user's skills.
func (svc *SkillService) List(ctx context.Context, userID uuid.UUID) ([]models.SkillDB, error) {
	skills, err := svc.reader.ListByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list skills", "err", err)
		return nil, err
	}
	return skills, nil
}
