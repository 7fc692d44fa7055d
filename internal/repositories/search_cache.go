package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/models"
)

// SearchCacheRepository caches discovery search results in Redis.
type SearchCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration for cached result pages
}

// NewSearchCacheRepository creates a new repository instance with the given TTL.
func NewSearchCacheRepository(client *redis.Client, expiration time.Duration) *SearchCacheRepository {
	return &SearchCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func searchKey(q, category string, page, pageSize int) string {
	return fmt.Sprintf("discovery:%s:%s:%d:%d", q, category, page, pageSize)
}

// GetResults fetches a cached result page. A cache miss returns an error.
func (r *SearchCacheRepository) GetResults(ctx context.Context, q, category string, page, pageSize int) ([]models.SearchResult, error) {
	key := searchKey(q, category, page, pageSize)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow("search cache miss",
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, fmt.Errorf("search results not cached for %q", key)
		}
		return nil, err
	}

	var results []models.SearchResult
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		logger.Log.Infow("search cache decode failed",
			"key", key,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow("search cache hit",
		"key", key,
		"result", len(results),
	)

	return results, nil
}

// SetResults caches a result page with the repository's expiration.
func (r *SearchCacheRepository) SetResults(ctx context.Context, q, category string, page, pageSize int, results []models.SearchResult) error {
	key := searchKey(q, category, page, pageSize)

	data, err := json.Marshal(results)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("search cache set",
		"key", key,
		"result", len(results),
		"error", err,
	)

	return err
}
