package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/models"
)

var (
	// ErrStaleStatus is returned when a status transition finds the swap no
	// longer in the expected state.
	ErrStaleStatus = errors.New("swap not in expected status")

	// ErrBalanceTooLow is returned when a settlement cannot cover the swap's
	// credits.
	ErrBalanceTooLow = errors.New("credit balance too low")
)

type SwapReadRepository struct {
	db *sqlx.DB
}

func NewSwapReadRepository(db *sqlx.DB) *SwapReadRepository {
	return &SwapReadRepository{db: db}
}

// GetByID returns a swap, or nil if it does not exist.
func (r *SwapReadRepository) GetByID(ctx context.Context, swapID uuid.UUID) (*models.SwapDB, error) {
	const query = `
		SELECT swap_id, requester_id, partner_id, offered_skill, wanted_skill, credits, status, created_at, updated_at
		FROM swaps
		WHERE swap_id = $1
	`

	var swap models.SwapDB
	err := r.db.GetContext(ctx, &swap, query, swapID)

	logger.Log.Infow("swap query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{swapID},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &swap, nil
}

// ListByUser returns swaps where the user is requester or partner, newest
// first.
func (r *SwapReadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SwapDB, error) {
	const query = `
		SELECT swap_id, requester_id, partner_id, offered_skill, wanted_skill, credits, status, created_at, updated_at
		FROM swaps
		WHERE requester_id = $1 OR partner_id = $1
		ORDER BY created_at DESC
	`

	var swaps []models.SwapDB
	err := r.db.SelectContext(ctx, &swaps, query, userID)

	logger.Log.Infow("list swaps",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(swaps),
		"error", err,
	)

	return swaps, err
}

type SwapWriteRepository struct {
	db *sqlx.DB
}

func NewSwapWriteRepository(db *sqlx.DB) *SwapWriteRepository {
	return &SwapWriteRepository{db: db}
}

// Create inserts a pending swap and returns the created row.
func (r *SwapWriteRepository) Create(ctx context.Context, requesterID, partnerID uuid.UUID, offeredSkill, wantedSkill string, credits float64) (*models.SwapDB, error) {
	const query = `
		INSERT INTO swaps (swap_id, requester_id, partner_id, offered_skill, wanted_skill, credits, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending', NOW(), NOW())
		RETURNING swap_id, requester_id, partner_id, offered_skill, wanted_skill, credits, status, created_at, updated_at
	`

	var swap models.SwapDB
	err := r.db.GetContext(ctx, &swap, query, uuid.New(), requesterID, partnerID, offeredSkill, wantedSkill, credits)

	logger.Log.Infow("insert swap",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{requesterID, partnerID, offeredSkill, wantedSkill, credits},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &swap, nil
}

// UpdateStatus moves a swap from one status to another. The WHERE guard makes
// the transition race-safe; a raced transition returns ErrStaleStatus.
func (r *SwapWriteRepository) UpdateStatus(ctx context.Context, swapID uuid.UUID, from, to string) error {
	const query = `
		UPDATE swaps
		SET status = $3, updated_at = NOW()
		WHERE swap_id = $1 AND status = $2
	`

	res, err := r.db.ExecContext(ctx, query, swapID, from, to)
	var affected int64
	if res != nil {
		affected, _ = res.RowsAffected()
	}

	logger.Log.Infow("update swap status",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{swapID, from, to},
		"result", affected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStaleStatus
	}
	return nil
}

// Complete settles an accepted swap in one transaction: the swap is marked
// completed, the requester pays the agreed credits to the partner, and both
// reputations get their completed-swap counter bumped. Either everything
// commits or nothing does.
func (r *SwapWriteRepository) Complete(ctx context.Context, swapID, requesterID, partnerID uuid.UUID, credits float64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin settlement transaction", "swap_id", swapID, "error", err)
		return err
	}
	defer tx.Rollback()

	const markCompleted = `
		UPDATE swaps
		SET status = 'completed', updated_at = NOW()
		WHERE swap_id = $1 AND status = 'accepted'
	`
	res, err := tx.ExecContext(ctx, markCompleted, swapID)
	if err != nil {
		logger.Log.Errorw("failed to mark swap completed", "swap_id", swapID, "error", err)
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrStaleStatus
	}

	const debit = `
		UPDATE credit_balances
		SET balance = balance - $2, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
		RETURNING balance
	`
	var remaining float64
	if err := tx.GetContext(ctx, &remaining, debit, requesterID, credits); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBalanceTooLow
		}
		logger.Log.Errorw("failed to debit requester", "swap_id", swapID, "error", err)
		return err
	}

	const credit = `
		UPDATE credit_balances
		SET balance = balance + $2, updated_at = NOW()
		WHERE user_id = $1
	`
	if _, err := tx.ExecContext(ctx, credit, partnerID, credits); err != nil {
		logger.Log.Errorw("failed to credit partner", "swap_id", swapID, "error", err)
		return err
	}

	const bumpSwaps = `
		UPDATE reputations
		SET completed_swaps = completed_swaps + 1, updated_at = NOW()
		WHERE user_id IN ($1, $2)
	`
	if _, err := tx.ExecContext(ctx, bumpSwaps, requesterID, partnerID); err != nil {
		logger.Log.Errorw("failed to bump completed swaps", "swap_id", swapID, "error", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit settlement transaction", "swap_id", swapID, "error", err)
		return err
	}

	logger.Log.Infow("swap settled", "swap_id", swapID, "credits", credits)
	return nil
}
