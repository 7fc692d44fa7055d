package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/skillswap/backend/internal/models"
	"github.com/skillswap/backend/internal/services"
)

func newSocialService(ctrl *gomock.Controller) (*services.SocialService, *services.MockPostReader, *services.MockPostWriter, *services.MockFollowWriter, *services.MockUserReader) {
	posts := services.NewMockPostReader(ctrl)
	writer := services.NewMockPostWriter(ctrl)
	follows := services.NewMockFollowWriter(ctrl)
	users := services.NewMockUserReader(ctrl)
	svc := services.NewSocialService(posts, writer, follows, users)
	return svc, posts, writer, follows, users
}

func TestSocialService_CreatePost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, writer, _, _ := newSocialService(ctrl)
	userID := uuid.New()

	t.Run("successful post", func(t *testing.T) {
		writer.EXPECT().
			Save(gomock.Any(), userID, "hello world").
			Return(&models.PostDB{PostID: uuid.New(), UserID: userID, Content: "hello world"}, nil)

		post, err := svc.CreatePost(context.Background(), userID, "  hello world  ")
		assert.NoError(t, err)
		assert.Equal(t, "hello world", post.Content)
	})

	t.Run("empty content rejected", func(t *testing.T) {
		post, err := svc.CreatePost(context.Background(), userID, "   ")
		assert.ErrorIs(t, err, services.ErrInvalidContent)
		assert.Nil(t, post)
	})

	t.Run("oversized content rejected", func(t *testing.T) {
		post, err := svc.CreatePost(context.Background(), userID, strings.Repeat("a", 2001))
		assert.ErrorIs(t, err, services.ErrInvalidContent)
		assert.Nil(t, post)
	})
}

func TestSocialService_Feed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, posts, _, _, _ := newSocialService(ctrl)
	userID := uuid.New()

	items := []models.FeedItem{{PostID: uuid.New(), Content: "hi"}}

	t.Run("defaults applied", func(t *testing.T) {
		posts.EXPECT().Feed(gomock.Any(), userID, 20, 0).Return(items, nil)

		got, err := svc.Feed(context.Background(), userID, 0, 0)
		assert.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("offset follows page", func(t *testing.T) {
		posts.EXPECT().Feed(gomock.Any(), userID, 10, 20).Return(nil, nil)

		_, err := svc.Feed(context.Background(), userID, 3, 10)
		assert.NoError(t, err)
	})
}

func TestSocialService_LikeAndComment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, posts, writer, _, _ := newSocialService(ctrl)
	userID := uuid.New()
	postID := uuid.New()

	t.Run("like existing post", func(t *testing.T) {
		posts.EXPECT().Exists(gomock.Any(), postID).Return(true, nil)
		writer.EXPECT().Like(gomock.Any(), postID, userID).Return(nil)

		assert.NoError(t, svc.Like(context.Background(), postID, userID))
	})

	t.Run("like missing post", func(t *testing.T) {
		posts.EXPECT().Exists(gomock.Any(), postID).Return(false, nil)

		assert.ErrorIs(t, svc.Like(context.Background(), postID, userID), services.ErrPostNotFound)
	})

	t.Run("comment on existing post", func(t *testing.T) {
		posts.EXPECT().Exists(gomock.Any(), postID).Return(true, nil)
		writer.EXPECT().
			SaveComment(gomock.Any(), postID, userID, "nice").
			Return(&models.CommentDB{CommentID: uuid.New(), Content: "nice"}, nil)

		comment, err := svc.Comment(context.Background(), postID, userID, "nice")
		assert.NoError(t, err)
		assert.Equal(t, "nice", comment.Content)
	})

	t.Run("empty comment rejected before existence check", func(t *testing.T) {
		comment, err := svc.Comment(context.Background(), postID, userID, " ")
		assert.ErrorIs(t, err, services.ErrInvalidContent)
		assert.Nil(t, comment)
	})
}

func TestSocialService_Follow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, follows, users := newSocialService(ctrl)
	followerID := uuid.New()
	followeeID := uuid.New()

	t.Run("successful follow", func(t *testing.T) {
		users.EXPECT().GetByID(gomock.Any(), followeeID).Return(&models.UserDB{UserID: followeeID}, nil)
		follows.EXPECT().Save(gomock.Any(), followerID, followeeID).Return(nil)

		assert.NoError(t, svc.Follow(context.Background(), followerID, followeeID))
	})

	t.Run("self follow rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.Follow(context.Background(), followerID, followerID), services.ErrSelfFollow)
	})

	t.Run("unknown followee", func(t *testing.T) {
		users.EXPECT().GetByID(gomock.Any(), followeeID).Return(nil, nil)

		assert.ErrorIs(t, svc.Follow(context.Background(), followerID, followeeID), services.ErrUserNotFound)
	})

	t.Run("unfollow", func(t *testing.T) {
		follows.EXPECT().Delete(gomock.Any(), followerID, followeeID).Return(nil)

		assert.NoError(t, svc.Unfollow(context.Background(), followerID, followeeID))
	})

	t.Run("follow save error surfaced", func(t *testing.T) {
		users.EXPECT().GetByID(gomock.Any(), followeeID).Return(&models.UserDB{UserID: followeeID}, nil)
		follows.EXPECT().Save(gomock.Any(), followerID, followeeID).Return(errors.New("db error"))

		assert.EqualError(t, svc.Follow(context.Background(), followerID, followeeID), "db error")
	})
}
