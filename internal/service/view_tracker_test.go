package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/youtube-seguro/video-catalog-go/internal/db"
	"github.com/youtube-seguro/video-catalog-go/internal/db/memstore"
	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
)

func TestViewTracker_RegisterView(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 10, 19, 15, 30, 0, 0, time.FixedZone("CST", -6*3600))

	store := memstore.New()
	id, err := store.CreateVideo(ctx, pozole())
	require.NoError(t, err)

	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e *models.CatalogEvent) bool {
		return e.Type == models.EventViewRegistered && e.VideoID == id
	})).Return(nil).Once()

	tracker := NewViewTracker(store, pub, func() time.Time { return fixed })
	entry, err := tracker.RegisterView(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, entry.VideoID)
	assert.Equal(t, fixed.UTC(), entry.ViewedAt)

	video, err := store.GetVideo(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), video.Views)
	pub.AssertExpectations(t)
}

func TestViewTracker_RegisterViewMissingVideo(t *testing.T) {
	pub := &mockPublisher{}
	tracker := NewViewTracker(memstore.New(), pub, nil)

	_, err := tracker.RegisterView(context.Background(), 7)
	assert.True(t, db.IsNotFound(err))
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestViewTracker_ConcurrentViews(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	id, err := store.CreateVideo(ctx, pozole())
	require.NoError(t, err)

	tracker := NewViewTracker(store, NopPublisher{}, nil)

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tracker.RegisterView(ctx, id)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	video, err := store.GetVideo(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(n), video.Views)

	history, err := store.ListHistory(ctx, id)
	require.NoError(t, err)
	assert.Len(t, history, n)
}
