package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/models"
)

type SkillWriteRepository struct {
	db *sqlx.DB
}

func NewSkillWriteRepository(db *sqlx.DB) *SkillWriteRepository {
	return &SkillWriteRepository{db: db}
}

// Save inserts a skill for the given user and returns the created row.
func (r *SkillWriteRepository) Save(ctx context.Context, userID uuid.UUID, name, category, kind string) (*models.SkillDB, error) {
	const query = `
		INSERT INTO skills (skill_id, user_id, name, category, kind, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING skill_id, user_id, name, category, kind, created_at
	`

	var skill models.SkillDB
	err := r.db.GetContext(ctx, &skill, query, uuid.New(), userID, name, category, kind)

	logger.Log.Infow("insert skill",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, name, category, kind},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// Delete removes a skill owned by the given user. Returns the number of rows
// removed so callers can distinguish missing from not-owned.
func (r *SkillWriteRepository) Delete(ctx context.Context, skillID, userID uuid.UUID) (int64, error) {
	const query = `DELETE FROM skills WHERE skill_id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, skillID, userID)
	var affected int64
	if res != nil {
		affected, _ = res.RowsAffected()
	}

	logger.Log.Infow("delete skill",
		"query", query,
		"args", []any{skillID, userID},
		"result", affected,
		"error", err,
	)

	return affected, err
}

type SkillReadRepository struct {
	db *sqlx.DB
}

func NewSkillReadRepository(db *sqlx.DB) *SkillReadRepository {
	return &SkillReadRepository{db: db}
}

// ListByUser returns all skills for a user, offered first.
func (r *SkillReadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SkillDB, error) {
	const query = `
		SELECT skill_id, user_id, name, category, kind, created_at
		FROM skills
		WHERE user_id = $1
		ORDER BY kind, name
	`

	var skills []models.SkillDB
	err := r.db.SelectContext(ctx, &skills, query, userID)

	logger.Log.Infow("list skills",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(skills),
		"error", err,
	)

	return skills, err
}

// Search finds users offering skills matching the query and/or category,
// joined with their reputation summary, newest members last.
func (r *SkillReadRepository) Search(ctx context.Context, q, category string, limit, offset int) ([]models.SearchResult, error) {
	const query = `
		SELECT u.user_id, u.name, u.location,
		       s.name AS skill_name, s.category AS skill_category,
		       r.overall_rating, r.completed_swaps
		FROM skills s
		JOIN users u ON u.user_id = s.user_id
		JOIN reputations r ON r.user_id = s.user_id
		WHERE s.kind = 'offered'
		  AND ($1 = '' OR s.name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR s.category = $2)
		ORDER BY r.overall_rating DESC, u.created_at
		LIMIT $3 OFFSET $4
	`

	var results []models.SearchResult
	err := r.db.SelectContext(ctx, &results, query, q, category, limit, offset)

	logger.Log.Infow("search skills",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{q, category, limit, offset},
		"result", len(results),
		"error", err,
	)

	return results, err
}
