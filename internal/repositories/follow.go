package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillswap/backend/internal/logger"
)

type FollowWriteRepository struct {
	db *sqlx.DB
}

func NewFollowWriteRepository(db *sqlx.DB) *FollowWriteRepository {
	return &FollowWriteRepository{db: db}
}

// Save records a follow and updates both users' counters in one transaction.
// Following someone twice is a no-op and leaves the counters untouched.
func (r *FollowWriteRepository) Save(ctx context.Context, followerID, followeeID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin follow transaction", "error", err)
		return err
	}
	defer tx.Rollback()

	const insertFollow = `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`
	res, err := tx.ExecContext(ctx, insertFollow, followerID, followeeID)
	if err != nil {
		logger.Log.Errorw("failed to insert follow", "follower_id", followerID, "followee_id", followeeID, "error", err)
		return err
	}

	if affected, _ := res.RowsAffected(); affected > 0 {
		if err := adjustFollowCounters(ctx, tx, followerID, followeeID, 1); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes a follow and updates both users' counters in one
// transaction. Unfollowing someone not followed is a no-op.
func (r *FollowWriteRepository) Delete(ctx context.Context, followerID, followeeID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin unfollow transaction", "error", err)
		return err
	}
	defer tx.Rollback()

	const deleteFollow = `
		DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2
	`
	res, err := tx.ExecContext(ctx, deleteFollow, followerID, followeeID)
	if err != nil {
		logger.Log.Errorw("failed to delete follow", "follower_id", followerID, "followee_id", followeeID, "error", err)
		return err
	}

	if affected, _ := res.RowsAffected(); affected > 0 {
		if err := adjustFollowCounters(ctx, tx, followerID, followeeID, -1); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func adjustFollowCounters(ctx context.Context, tx *sqlx.Tx, followerID, followeeID uuid.UUID, delta int) error {
	const bumpFollowing = `
		UPDATE social_stats SET following = following + $2, updated_at = NOW() WHERE user_id = $1
	`
	if _, err := tx.ExecContext(ctx, bumpFollowing, followerID, delta); err != nil {
		logger.Log.Errorw("failed to adjust following counter",
			"query", strings.Join(strings.Fields(bumpFollowing), " "),
			"user_id", followerID,
			"error", err,
		)
		return err
	}

	const bumpFollowers = `
		UPDATE social_stats SET followers = followers + $2, updated_at = NOW() WHERE user_id = $1
	`
	if _, err := tx.ExecContext(ctx, bumpFollowers, followeeID, delta); err != nil {
		logger.Log.Errorw("failed to adjust followers counter",
			"query", strings.Join(strings.Fields(bumpFollowers), " "),
			"user_id", followeeID,
			"error", err,
		)
		return err
	}

	return nil
}
