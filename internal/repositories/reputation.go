package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillswap/backend/internal/logger"
)

// ErrDuplicateRating is returned when a user rates the same swap twice.
var ErrDuplicateRating = errors.New("swap already rated by this user")

type RatingWriteRepository struct {
	db *sqlx.DB
}

func NewRatingWriteRepository(db *sqlx.DB) *RatingWriteRepository {
	return &RatingWriteRepository{db: db}
}

// Save records a rating for a swap and folds it into the ratee's reputation
// in the same transaction. The primary key on (swap_id, rater_id) enforces
// one rating per participant per swap.
func (r *RatingWriteRepository) Save(ctx context.Context, swapID, raterID, rateeID uuid.UUID, score int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin rating transaction", "swap_id", swapID, "error", err)
		return err
	}
	defer tx.Rollback()

	const insertRating = `
		INSERT INTO swap_ratings (swap_id, rater_id, score, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (swap_id, rater_id) DO NOTHING
	`
	res, err := tx.ExecContext(ctx, insertRating, swapID, raterID, score)
	if err != nil {
		logger.Log.Errorw("failed to insert rating", "swap_id", swapID, "error", err)
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrDuplicateRating
	}

	// overall_rating is a running mean; trust_score drifts halfway toward
	// the score mapped onto the 0..100 range, clamped.
	const updateReputation = `
		UPDATE reputations
		SET overall_rating = (overall_rating * total_ratings + $2) / (total_ratings + 1),
		    total_ratings = total_ratings + 1,
		    trust_score = LEAST(100, GREATEST(0, (trust_score + $2 * 20) / 2)),
		    updated_at = NOW()
		WHERE user_id = $1
	`
	if _, err := tx.ExecContext(ctx, updateReputation, rateeID, score); err != nil {
		logger.Log.Errorw("failed to update reputation", "ratee_id", rateeID, "error", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit rating transaction", "swap_id", swapID, "error", err)
		return err
	}

	logger.Log.Infow("rating saved",
		"swap_id", swapID,
		"rater_id", raterID,
		"ratee_id", rateeID,
		"score", score,
	)
	return nil
}

type CreditReadRepository struct {
	db *sqlx.DB
}

func NewCreditReadRepository(db *sqlx.DB) *CreditReadRepository {
	return &CreditReadRepository{db: db}
}

// GetBalance returns the user's current credit balance.
func (r *CreditReadRepository) GetBalance(ctx context.Context, userID uuid.UUID) (float64, error) {
	const query = `SELECT balance FROM credit_balances WHERE user_id = $1`

	var balance float64
	err := r.db.GetContext(ctx, &balance, query, userID)

	logger.Log.Infow("balance query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", balance,
		"error", err,
	)

	return balance, err
}
