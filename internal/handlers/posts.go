package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/middlewares"
	"github.com/skillswap/backend/internal/models"
	"github.com/skillswap/backend/internal/services"
)

// Socialer defines the interface that the social service must implement.
type Socialer interface {
	CreatePost(ctx context.Context, userID uuid.UUID, content string) (*models.PostDB, error)
	Feed(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.FeedItem, error)
	Like(ctx context.Context, postID, userID uuid.UUID) error
	Unlike(ctx context.Context, postID, userID uuid.UUID) error
	Comment(ctx context.Context, postID, userID uuid.UUID, content string) (*models.CommentDB, error)
	Comments(ctx context.Context, postID uuid.UUID) ([]models.CommentDB, error)
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
}

// CreatePostRequest represents the JSON body for creating a post
// swagger:model CreatePostRequest
type CreatePostRequest struct {
	// Post content, 1 to 2000 characters
	// required: true
	// example: Just finished my first guitar swap session!
	Content string `json:"content"`
}

// CommentRequest represents the JSON body for commenting on a post
// swagger:model CommentRequest
type CommentRequest struct {
	// Comment content
	// required: true
	Content string `json:"content"`
}

// NewCreatePostHandler returns an HTTP handler that publishes a post.
// @Summary Create a post
// @Tags social
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createPostRequest body handlers.CreatePostRequest true "Post"
// @Success 201 {object} models.PostDB "Post created"
// @Failure 400 {object} handlers.ErrorResponse "Invalid content"
// @Router /api/posts [post]
func NewCreatePostHandler(svc Socialer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid request body"})
			return
		}

		post, err := svc.CreatePost(r.Context(), userID, req.Content)
		if err != nil {
			writeSocialError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(post)
	}
}

// NewFeedHandler returns an HTTP handler serving the caller's feed.
// @Summary Get the feed
// @Description Recent posts by the caller and followed users, newest first
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, starting at 1"
// @Success 200 {array} models.FeedItem "Feed page returned"
// @Router /api/feed [get]
func NewFeedHandler(svc Socialer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

		items, err := svc.Feed(r.Context(), userID, page, pageSize)
		if err != nil {
			writeSocialError(w, err)
			return
		}

		if items == nil {
			items = []models.FeedItem{}
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(items)
	}
}

// NewLikeHandler returns an HTTP handler that likes a post.
// @Summary Like a post
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} handlers.ErrorResponse "Like recorded"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /api/posts/{id}/like [post]
func NewLikeHandler(svc Socialer) http.HandlerFunc {
	return postAction(svc.Like, "Like recorded")
}

// NewUnlikeHandler returns an HTTP handler that removes a like.
// @Summary Unlike a post
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} handlers.ErrorResponse "Like removed"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /api/posts/{id}/like [delete]
func NewUnlikeHandler(svc Socialer) http.HandlerFunc {
	return postAction(svc.Unlike, "Like removed")
}

func postAction(action func(ctx context.Context, postID, userID uuid.UUID) error, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		postID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid post id"})
			return
		}

		if err := action(r.Context(), postID, userID); err != nil {
			writeSocialError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ErrorResponse{Message: message})
	}
}

// NewCommentHandler returns an HTTP handler that comments on a post.
// @Summary Comment on a post
// @Tags social
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param commentRequest body handlers.CommentRequest true "Comment"
// @Success 201 {object} models.CommentDB "Comment created"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /api/posts/{id}/comments [post]
func NewCommentHandler(svc Socialer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		postID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid post id"})
			return
		}

		var req CommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid request body"})
			return
		}

		comment, err := svc.Comment(r.Context(), postID, userID, req.Content)
		if err != nil {
			writeSocialError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(comment)
	}
}

// NewListCommentsHandler returns an HTTP handler listing a post's comments.
// @Summary List comments
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {array} models.CommentDB "Comments returned"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /api/posts/{id}/comments [get]
func NewListCommentsHandler(svc Socialer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid post id"})
			return
		}

		comments, err := svc.Comments(r.Context(), postID)
		if err != nil {
			writeSocialError(w, err)
			return
		}

		if comments == nil {
			comments = []models.CommentDB{}
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(comments)
	}
}

// NewFollowHandler returns an HTTP handler that follows a user.
// @Summary Follow a user
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} handlers.ErrorResponse "Follow recorded"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /api/users/{id}/follow [post]
func NewFollowHandler(svc Socialer) http.HandlerFunc {
	return followAction(svc.Follow, "Follow recorded")
}

// NewUnfollowHandler returns an HTTP handler that unfollows a user.
// @Summary Unfollow a user
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} handlers.ErrorResponse "Follow removed"
// @Router /api/users/{id}/follow [delete]
func NewUnfollowHandler(svc Socialer) http.HandlerFunc {
	return followAction(svc.Unfollow, "Follow removed")
}

func followAction(action func(ctx context.Context, followerID, followeeID uuid.UUID) error, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		followerID := middlewares.GetUserIDFromContext(r.Context())

		followeeID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "invalid user id"})
			return
		}

		if err := action(r.Context(), followerID, followeeID); err != nil {
			writeSocialError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ErrorResponse{Message: message})
	}
}

func writeSocialError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound), errors.Is(err, services.ErrUserNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrInvalidContent), errors.Is(err, services.ErrSelfFollow):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Message: err.Error()})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Message: "Internal server error"})
	}
}
