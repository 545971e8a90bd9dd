package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youtube-seguro/video-catalog-go/internal/db/memstore"
	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
)

func TestDayBounds(t *testing.T) {
	tests := []struct {
		name      string
		in        time.Time
		wantStart time.Time
	}{
		{
			name:      "midday utc",
			in:        time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
			wantStart: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "local evening crosses into next utc day",
			in:        time.Date(2026, 10, 19, 20, 0, 0, 0, time.FixedZone("CST", -6*3600)),
			wantStart: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "exact midnight",
			in:        time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := DayBounds(tt.in)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantStart.Add(24*time.Hour), end)
		})
	}
}

func TestStatsAggregator_GetStats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	store := memstore.New()
	p, _ := store.CreateVideo(ctx, pozole())
	v, _ := store.CreateVideo(ctx, &models.VideoInput{YouTubeID: "c7VJaqqDVzY", Title: "Vicente", Channel: "VFVEVO", Category: "Musica"})

	tracker := NewViewTracker(store, nil, clock)
	for i := 0; i < 2; i++ {
		_, err := tracker.RegisterView(ctx, v)
		require.NoError(t, err)
	}
	_, err := store.RegisterView(ctx, p, now.Add(-24*time.Hour))
	require.NoError(t, err)

	stats, err := NewStatsAggregator(store, clock).GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(3), stats.TotalViews)
	assert.Equal(t, int64(2), stats.ViewsToday)
	require.NotNil(t, stats.MostViewed)
	assert.Equal(t, "Vicente", stats.MostViewed.Title)

	var sumVideos, sumViews int64
	for _, c := range stats.ByCategory {
		sumVideos += c.Videos
		sumViews += c.Views
	}
	assert.Equal(t, stats.TotalVideos, sumVideos)
	assert.Equal(t, stats.TotalViews, sumViews)
}
