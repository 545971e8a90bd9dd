//go:build integration
// +build integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/youtube-seguro/video-catalog-go/internal/config"
	"github.com/youtube-seguro/video-catalog-go/internal/db"
	"github.com/youtube-seguro/video-catalog-go/internal/db/memstore"
	"github.com/youtube-seguro/video-catalog-go/internal/validation"
)

func setupTestRedis(t *testing.T) (config.RedisConfig, func()) {
	require.NoError(t, initTestLogger())

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return config.RedisConfig{Addr: uri}, cleanup
}

func TestBlockedTermCache_LoadAndLookup(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	cfg, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := NewRedisClient(ctx, cfg)
	require.NoError(t, err)
	defer client.Close()

	store := memstore.NewSeeded()
	cache := NewBlockedTermCache(client, NewStoreTermSource(store))
	require.NoError(t, cache.Ping(ctx))

	require.NoError(t, cache.LoadFromStore(ctx))

	count, err := cache.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(38), count)

	terms, err := cache.BlockedTerms(ctx)
	require.NoError(t, err)
	assert.Contains(t, terms, "magia negra")

	svc := NewCatalogService(store, validation.New(true), NewModerator(cache, true), nil, "")
	in := pozole()
	in.Title = "Hechizo de amor"
	_, err = svc.CreateVideo(ctx, in)
	assert.ErrorIs(t, err, db.ErrBlockedContent)
}

func TestBlockedTermCache_FallsBackToStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	cfg, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	client, err := NewRedisClient(ctx, cfg)
	require.NoError(t, err)

	cache := NewBlockedTermCache(client, staticTerms{"ouija"})

	// Not loaded yet: the empty set falls through to the store.
	terms, err := cache.BlockedTerms(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ouija"}, terms)

	require.NoError(t, client.Close())

	terms, err = cache.BlockedTerms(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ouija"}, terms)
}
