// Package trends serves trending news with a redis-backed cache and a
// background refresher shared across replicas.
package trends

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/omnimind-research/omnimind/internal/search"
)

// Cache reads trending results from redis and falls back to a direct
// news fetch on a miss. A nil redis client disables caching entirely;
// every call then fetches directly.
type Cache struct {
	Rdb     *redis.Client
	Fetcher search.Fetcher
	TTL     time.Duration
	logger  *log.Logger
}

// NewCache builds a trending cache over the news fetcher.
func NewCache(rdb *redis.Client, fetcher search.Fetcher, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Cache{
		Rdb:     rdb,
		Fetcher: fetcher,
		TTL:     ttl,
		logger:  log.New(log.Writer(), "[TRENDS] ", log.LstdFlags),
	}
}

func cacheKey(region string) string { return "trending:" + region }

// Trending returns cached trending results for the region, refreshing
// the cache on a miss. Fetch failures degrade to an empty result.
func (c *Cache) Trending(ctx context.Context, region string, limit int) []search.Result {
	if region == "" {
		region = "global"
	}
	if c.Rdb != nil {
		raw, err := c.Rdb.Get(ctx, cacheKey(region)).Result()
		if err == nil {
			var cached []search.Result
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				if len(cached) > limit {
					cached = cached[:limit]
				}
				return cached
			}
			c.logger.Printf("dropping undecodable cache entry for %s", region)
		} else if err != redis.Nil {
			c.logger.Printf("cache read failed for %s: %v", region, err)
		}
	}
	return c.Refresh(ctx, region, limit)
}

// Refresh fetches trending news for the region and stores it.
func (c *Cache) Refresh(ctx context.Context, region string, limit int) []search.Result {
	query := "trending"
	if region != "" && region != "global" {
		query = "trending " + region
	}
	results, err := c.Fetcher.Fetch(ctx, query, limit)
	if err != nil {
		c.logger.Printf("trending fetch failed for %s: %v", region, err)
		return nil
	}
	if c.Rdb != nil && len(results) > 0 {
		if raw, err := json.Marshal(results); err == nil {
			if err := c.Rdb.Set(ctx, cacheKey(region), raw, c.TTL).Err(); err != nil {
				c.logger.Printf("cache write failed for %s: %v", region, err)
			}
		}
	}
	return results
}
