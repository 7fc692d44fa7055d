package services

import (
	"context"
	"strings"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

// SkillSearcher searches offered skills in the persistence layer.
type SkillSearcher interface {
	Search(ctx context.Context, q, category string, limit, offset int) ([]models.SearchResult, error)
}

// SearchCache caches discovery result pages.
type SearchCache interface {
	GetResults(ctx context.Context, q, category string, page, pageSize int) ([]models.SearchResult, error)
	SetResults(ctx context.Context, q, category string, page, pageSize int, results []models.SearchResult) error
}

// DiscoveryService finds skill partners.
type DiscoveryService struct {
	searcher SkillSearcher
	cache    SearchCache
}

// NewDiscoveryService creates a new DiscoveryService instance.
func NewDiscoveryService(searcher SkillSearcher, cache SearchCache) *DiscoveryService {
	return &DiscoveryService{
		searcher: searcher,
		cache:    cache,
	}
}

// Search returns a page of users offering matching skills. Pages served from
// the cache when possible; a failed cache write never fails the search.
func (svc *DiscoveryService) Search(ctx context.Context, q, category string, page, pageSize int) ([]models.SearchResult, error) {
	q = strings.TrimSpace(q)
	category = strings.TrimSpace(category)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	if svc.cache != nil {
		if results, err := svc.cache.GetResults(ctx, q, category, page, pageSize); err == nil {
			return results, nil
		}
	}

	results, err := svc.searcher.Search(ctx, q, category, pageSize, (page-1)*pageSize)
	if err != nil {
		logger.Log.Errorw("failed to search skills", "err", err)
		return nil, err
	}

	if svc.cache != nil {
		if err := svc.cache.SetResults(ctx, q, category, page, pageSize, results); err != nil {
			logger.Log.Warnw("failed to cache search results", "err", err)
		}
	}

	return results, nil
}
