package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/models"
)

type PostWriteRepository struct {
	db *sqlx.DB
}

func NewPostWriteRepository(db *sqlx.DB) *PostWriteRepository {
	return &PostWriteRepository{db: db}
}

// Save inserts a post and bumps the author's post counter in the same
// transaction.
func (r *PostWriteRepository) Save(ctx context.Context, userID uuid.UUID, content string) (*models.PostDB, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin post transaction", "user_id", userID, "error", err)
		return nil, err
	}
	defer tx.Rollback()

	const insertPost = `
		INSERT INTO posts (post_id, user_id, content, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING post_id, user_id, content, created_at
	`
	var post models.PostDB
	if err := tx.GetContext(ctx, &post, insertPost, uuid.New(), userID, content); err != nil {
		logger.Log.Errorw("failed to insert post", "user_id", userID, "error", err)
		return nil, err
	}

	const bumpPosts = `
		UPDATE social_stats SET posts = posts + 1, updated_at = NOW() WHERE user_id = $1
	`
	if _, err := tx.ExecContext(ctx, bumpPosts, userID); err != nil {
		logger.Log.Errorw("failed to bump post counter", "user_id", userID, "error", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit post transaction", "user_id", userID, "error", err)
		return nil, err
	}

	return &post, nil
}

// Like records a like. Duplicate likes are a no-op via the primary key.
func (r *PostWriteRepository) Like(ctx context.Context, postID, userID uuid.UUID) error {
	const query = `
		INSERT INTO post_likes (post_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (post_id, user_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, postID, userID)

	logger.Log.Infow("like post",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{postID, userID},
		"error", err,
	)

	return err
}

// Unlike removes a like if present.
func (r *PostWriteRepository) Unlike(ctx context.Context, postID, userID uuid.UUID) error {
	const query = `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, postID, userID)

	logger.Log.Infow("unlike post",
		"query", query,
		"args", []any{postID, userID},
		"error", err,
	)

	return err
}

// SaveComment inserts a comment on a post and returns it with the author
// name resolved.
func (r *PostWriteRepository) SaveComment(ctx context.Context, postID, userID uuid.UUID, content string) (*models.CommentDB, error) {
	const query = `
		WITH inserted AS (
			INSERT INTO comments (comment_id, post_id, user_id, content, created_at)
			VALUES ($1, $2, $3, $4, NOW())
			RETURNING comment_id, post_id, user_id, content, created_at
		)
		SELECT i.comment_id, i.post_id, i.user_id, u.name AS author_name, i.content, i.created_at
		FROM inserted i
		JOIN users u ON u.user_id = i.user_id
	`

	var comment models.CommentDB
	err := r.db.GetContext(ctx, &comment, query, uuid.New(), postID, userID, content)

	logger.Log.Infow("insert comment",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{postID, userID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &comment, nil
}

type PostReadRepository struct {
	db *sqlx.DB
}

func NewPostReadRepository(db *sqlx.DB) *PostReadRepository {
	return &PostReadRepository{db: db}
}

// GetByID returns whether a post exists.
func (r *PostReadRepository) Exists(ctx context.Context, postID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM posts WHERE post_id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, postID)

	logger.Log.Infow("post exists query",
		"query", query,
		"args", []any{postID},
		"result", exists,
		"error", err,
	)

	return exists, err
}

// Feed returns recent posts by the user and everyone they follow, newest
// first, with like and comment counts.
func (r *PostReadRepository) Feed(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.FeedItem, error) {
	const query = `
		SELECT p.post_id, p.user_id, u.name AS author_name, p.content,
		       (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.post_id) AS likes,
		       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.post_id) AS comments,
		       p.created_at
		FROM posts p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.user_id = $1
		   OR p.user_id IN (SELECT followee_id FROM follows WHERE follower_id = $1)
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`

	var items []models.FeedItem
	err := r.db.SelectContext(ctx, &items, query, userID, limit, offset)

	logger.Log.Infow("feed query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, limit, offset},
		"result", len(items),
		"error", err,
	)

	return items, err
}

// ListComments returns a post's comments, oldest first.
func (r *PostReadRepository) ListComments(ctx context.Context, postID uuid.UUID) ([]models.CommentDB, error) {
	const query = `
		SELECT c.comment_id, c.post_id, c.user_id, u.name AS author_name, c.content, c.created_at
		FROM comments c
		JOIN users u ON u.user_id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at
	`

	var comments []models.CommentDB
	err := r.db.SelectContext(ctx, &comments, query, postID)

	logger.Log.Infow("list comments",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{postID},
		"result", len(comments),
		"error", err,
	)

	return comments, err
}
