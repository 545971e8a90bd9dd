package service

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/youtube-seguro/video-catalog-go/internal/metrics"
	"github.com/youtube-seguro/video-catalog-go/pkg/logger"
)

const (
	blockedTermsSetKey = "catalog:blocked_terms"
)

// BlockedTermCache keeps the blocked term list in a Redis set. Lookups fall
// back to the store when Redis fails.
type BlockedTermCache struct {
	redisClient *redis.Client
	store       TermSource
}

// NewBlockedTermCache creates a new BlockedTermCache.
func NewBlockedTermCache(redisClient *redis.Client, store TermSource) *BlockedTermCache {
	return &BlockedTermCache{
		redisClient: redisClient,
		store:       store,
	}
}

// LoadFromStore replaces the cached set with the terms held by the store.
// This should be called on application startup.
func (c *BlockedTermCache) LoadFromStore(ctx context.Context) error {
	terms, err := c.store.BlockedTerms(ctx)
	if err != nil {
		return fmt.Errorf("failed to load blocked terms from store: %w", err)
	}

	pipe := c.redisClient.TxPipeline()
	pipe.Del(ctx, blockedTermsSetKey)

	if len(terms) > 0 {
		members := make([]interface{}, len(terms))
		for i, term := range terms {
			members[i] = term
		}
		pipe.SAdd(ctx, blockedTermsSetKey, members...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to load blocked terms into Redis: %w", err)
	}

	logger.Log.Info("Loaded blocked terms into cache", zap.Int("count", len(terms)))
	return nil
}

// BlockedTerms returns the cached set, or the store's list when Redis errors
// or the set has not been loaded.
func (c *BlockedTermCache) BlockedTerms(ctx context.Context) ([]string, error) {
	terms, err := c.redisClient.SMembers(ctx, blockedTermsSetKey).Result()
	if err == nil && len(terms) > 0 {
		return terms, nil
	}

	if err != nil {
		metrics.BlockedTermCacheFallbacks.Inc()
		logger.Log.Warn("Blocked term cache unavailable, reading store", zap.Error(err))
	}
	return c.store.BlockedTerms(ctx)
}

// Count returns the number of cached terms.
func (c *BlockedTermCache) Count(ctx context.Context) (int64, error) {
	count, err := c.redisClient.SCard(ctx, blockedTermsSetKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get blocked term count: %w", err)
	}
	return count, nil
}

// Ping checks the Redis connection.
func (c *BlockedTermCache) Ping(ctx context.Context) error {
	return c.redisClient.Ping(ctx).Err()
}
