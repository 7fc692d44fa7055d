package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/skillswap/backend/internal/models"
	"github.com/skillswap/backend/internal/services"
)

func TestDiscoveryService_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	searcher := services.NewMockSkillSearcher(ctrl)
	cache := services.NewMockSearchCache(ctrl)
	svc := services.NewDiscoveryService(searcher, cache)

	results := []models.SearchResult{{UserID: uuid.New(), SkillName: "Guitar"}}

	t.Run("cache hit skips the database", func(t *testing.T) {
		cache.EXPECT().GetResults(gomock.Any(), "guitar", "", 1, 20).Return(results, nil)

		got, err := svc.Search(context.Background(), "guitar", "", 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, results, got)
	})

	t.Run("cache miss falls through and caches the page", func(t *testing.T) {
		cache.EXPECT().GetResults(gomock.Any(), "guitar", "Music", 2, 10).Return(nil, errors.New("cache miss"))
		searcher.EXPECT().Search(gomock.Any(), "guitar", "Music", 10, 10).Return(results, nil)
		cache.EXPECT().SetResults(gomock.Any(), "guitar", "Music", 2, 10, results).Return(nil)

		got, err := svc.Search(context.Background(), "guitar", "Music", 2, 10)
		assert.NoError(t, err)
		assert.Equal(t, results, got)
	})

	t.Run("failed cache write never fails the search", func(t *testing.T) {
		cache.EXPECT().GetResults(gomock.Any(), "piano", "", 1, 20).Return(nil, errors.New("cache miss"))
		searcher.EXPECT().Search(gomock.Any(), "piano", "", 20, 0).Return(results, nil)
		cache.EXPECT().SetResults(gomock.Any(), "piano", "", 1, 20, results).Return(errors.New("redis down"))

		got, err := svc.Search(context.Background(), "piano", "", 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, results, got)
	})

	t.Run("page and size are clamped and query trimmed", func(t *testing.T) {
		cache.EXPECT().GetResults(gomock.Any(), "guitar", "", 1, 50).Return(nil, errors.New("cache miss"))
		searcher.EXPECT().Search(gomock.Any(), "guitar", "", 50, 0).Return(nil, nil)
		cache.EXPECT().SetResults(gomock.Any(), "guitar", "", 1, 50, gomock.Any()).Return(nil)

		_, err := svc.Search(context.Background(), "  guitar  ", "", 0, 500)
		assert.NoError(t, err)
	})

	t.Run("search error is surfaced", func(t *testing.T) {
		cache.EXPECT().GetResults(gomock.Any(), "x", "", 1, 20).Return(nil, errors.New("cache miss"))
		searcher.EXPECT().Search(gomock.Any(), "x", "", 20, 0).Return(nil, errors.New("db error"))

		got, err := svc.Search(context.Background(), "x", "", 1, 20)
		assert.EqualError(t, err, "db error")
		assert.Nil(t, got)
	})
}
