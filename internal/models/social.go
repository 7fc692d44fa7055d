package models

import (
	"time"

	"github.com/google/uuid"
)

// SocialStatsDB represents a user's social counters, one-to-one with users.
type SocialStatsDB struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`     // Owning user
	Followers int       `json:"followers" db:"followers"` // Number of users following this user
	Following int       `json:"following" db:"following"` // Number of users this user follows
	Posts     int       `json:"posts" db:"posts"`         // Number of posts authored
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PostDB represents a feed post.
type PostDB struct {
	PostID    uuid.UUID `json:"id" db:"post_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FeedItem is a post enriched with author and engagement data for the feed.
type FeedItem struct {
	PostID     uuid.UUID `json:"id" db:"post_id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	AuthorName string    `json:"author_name" db:"author_name"`
	Content    string    `json:"content" db:"content"`
	Likes      int       `json:"likes" db:"likes"`
	Comments   int       `json:"comments" db:"comments"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// CommentDB represents a comment on a post.
type CommentDB struct {
	CommentID  uuid.UUID `json:"id" db:"comment_id"`
	PostID     uuid.UUID `json:"post_id" db:"post_id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	AuthorName string    `json:"author_name" db:"author_name"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
