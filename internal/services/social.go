package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/models"
)

const maxPostLength = 2000

// Error variables
var (
	ErrPostNotFound   = errors.New("post not found")
	ErrInvalidContent = errors.New("content must be between 1 and 2000 characters")
	ErrSelfFollow     = errors.New("cannot follow yourself")
)

// PostReader defines read operations for posts and the feed.
type PostReader interface {
	Exists(ctx context.Context, postID uuid.UUID) (bool, error)
	Feed(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.FeedItem, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]models.CommentDB, error)
}

// PostWriter defines write operations for posts, likes, and comments.
type PostWriter interface {
	Save(ctx context.Context, userID uuid.UUID, content string) (*models.PostDB, error)
	Like(ctx context.Context, postID, userID uuid.UUID) error
	Unlike(ctx context.Context, postID, userID uuid.UUID) error
	SaveComment(ctx context.Context, postID, userID uuid.UUID, content string) (*models.CommentDB, error)
}

// FollowWriter defines write operations for follow relationships.
type FollowWriter interface {
	Save(ctx context.Context, followerID, followeeID uuid.UUID) error
	Delete(ctx context.Context, followerID, followeeID uuid.UUID) error
}

// SocialService handles the feed, posts, likes, comments, and follows.
type SocialService struct {
	posts   PostReader
	writer  PostWriter
	follows FollowWriter
	users   UserReader
}

// NewSocialService creates a new SocialService.
func NewSocialService(posts PostReader, writer PostWriter, follows FollowWriter, users UserReader) *SocialService {
	return &SocialService{
		posts:   posts,
		writer:  writer,
		follows: follows,
		users:   users,
	}
}

// CreatePost publishes a post to the author's feed.
func (svc *SocialService) CreatePost(ctx context.Context, userID uuid.UUID, content string) (*models.PostDB, error) {
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > maxPostLength {
		return nil, ErrInvalidContent
	}

	post, err := svc.writer.Save(ctx, userID, content)
	if err != nil {
		logger.Log.Errorw("failed to save post", "err", err)
		return nil, err
	}
	return post, nil
}

// Feed returns a page of recent posts by the user and everyone they follow.
func (svc *SocialService) Feed(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.FeedItem, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, err := svc.posts.Feed(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		logger.Log.Errorw("failed to load feed", "err", err)
		return nil, err
	}
	return items, nil
}

// Like records a like on a post. Liking twice is a no-op.
func (svc *SocialService) Like(ctx context.Context, postID, userID uuid.UUID) error {
	if err := svc.requirePost(ctx, postID); err != nil {
		return err
	}

	if err := svc.writer.Like(ctx, postID, userID); err != nil {
		logger.Log.Errorw("failed to like post", "err", err)
		return err
	}
	return nil
}

// Unlike removes a like from a post.
func (svc *SocialService) Unlike(ctx context.Context, postID, userID uuid.UUID) error {
	if err := svc.requirePost(ctx, postID); err != nil {
		return err
	}

	if err := svc.writer.Unlike(ctx, postID, userID); err != nil {
		logger.Log.Errorw("failed to unlike post", "err", err)
		return err
	}
	return nil
}

// Comment adds a comment to a post.
func (svc *SocialService) Comment(ctx context.Context, postID, userID uuid.UUID, content string) (*models.CommentDB, error) {
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > maxPostLength {
		return nil, ErrInvalidContent
	}

	if err := svc.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := svc.writer.SaveComment(ctx, postID, userID, content)
	if err != nil {
		logger.Log.Errorw("failed to save comment", "err", err)
		return nil, err
	}
	return comment, nil
}

// Comments lists a post's comments.
func (svc *SocialService) Comments(ctx context.Context, postID uuid.UUID) ([]models.CommentDB, error) {
	if err := svc.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := svc.posts.ListComments(ctx, postID)
	if err != nil {
		logger.Log.Errorw("failed to list comments", "err", err)
		return nil, err
	}
	return comments, nil
}

// Follow records a follow relationship and updates both counters.
func (svc *SocialService) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	followee, err := svc.users.GetByID(ctx, followeeID)
	if err != nil {
		logger.Log.Errorw("failed to look up followee", "err", err)
		return err
	}
	if followee == nil {
		return ErrUserNotFound
	}

	if err := svc.follows.Save(ctx, followerID, followeeID); err != nil {
		logger.Log.Errorw("failed to save follow", "err", err)
		return err
	}
	return nil
}

// Unfollow removes a follow relationship and updates both counters.
func (svc *SocialService) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	if err := svc.follows.Delete(ctx, followerID, followeeID); err != nil {
		logger.Log.Errorw("failed to delete follow", "err", err)
		return err
	}
	return nil
}

func (svc *SocialService) requirePost(ctx context.Context, postID uuid.UUID) error {
	exists, err := svc.posts.Exists(ctx, postID)
	if err != nil {
		logger.Log.Errorw("failed to check post", "err", err)
		return err
	}
	if !exists {
		return ErrPostNotFound
	}
	return nil
}
