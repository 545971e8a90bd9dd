package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youtube-seguro/video-catalog-go/internal/db"
	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
)

func pozole() *models.VideoInput {
	return &models.VideoInput{
		YouTubeID:   "q8qZnLQ4FJg",
		Title:       "Pozole Rojo",
		Channel:     "Jauja Cocina",
		Description: "receta tradicional",
		Category:    "Recetas",
	}
}

func TestStore_CreateVideo(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return fixed }))

	id, err := s.CreateVideo(ctx, pozole())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	v, err := s.GetVideo(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, fixed, v.AddedAt)
	assert.Zero(t, v.Views)
	assert.Equal(t, "", v.Duration)

	dup := pozole()
	dup.Title = "Otro"
	_, err = s.CreateVideo(ctx, dup)
	assert.ErrorIs(t, err, db.ErrDuplicateKey)

	all, err := s.ListVideos(ctx, models.OrderDefault)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Pozole Rojo", all[0].Title)

	_, err = s.CreateVideo(ctx, &models.VideoInput{YouTubeID: "x"})
	assert.ErrorIs(t, err, db.ErrInvalidArgument)
}

func TestStore_GetVideoReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.CreateVideo(ctx, pozole())
	require.NoError(t, err)

	v, err := s.GetVideo(ctx, id)
	require.NoError(t, err)
	v.Views = 99

	again, err := s.GetVideo(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, again.Views)

	_, err = s.GetVideo(ctx, 404)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestStore_ListVideosOrdering(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	a, _ := s.CreateVideo(ctx, &models.VideoInput{YouTubeID: "aaaaaaaaaaa", Title: "A", Category: "Musica", Order: 5})
	b, _ := s.CreateVideo(ctx, &models.VideoInput{YouTubeID: "bbbbbbbbbbb", Title: "B", Category: "Musica", Order: 10})
	c, _ := s.CreateVideo(ctx, &models.VideoInput{YouTubeID: "ccccccccccc", Title: "C", Category: "Musica", Order: 10})
	s.Backdate(a, base)
	s.Backdate(b, base.Add(time.Hour))
	s.Backdate(c, base.Add(2*time.Hour))

	videos, err := s.ListVideos(ctx, models.OrderDefault)
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, []int64{c, b, a}, []int64{videos[0].ID, videos[1].ID, videos[2].ID})

	shuffled, err := s.ListVideos(ctx, models.OrderRandom)
	require.NoError(t, err)
	ids := []int64{shuffled[0].ID, shuffled[1].ID, shuffled[2].ID}
	assert.ElementsMatch(t, []int64{a, b, c}, ids)
}

func TestStore_ListVideosByCategory(t *testing.T) {
	ctx := context.Background()
	s := New()

	low, _ := s.CreateVideo(ctx, &models.VideoInput{YouTubeID: "WjHvPTT1qfA", Title: "Tamales", Category: "Recetas"})
	high, _ := s.CreateVideo(ctx, pozole())
	_, _ = s.CreateVideo(ctx, &models.VideoInput{YouTubeID: "c7VJaqqDVzY", Title: "Vicente", Category: "Musica"})
	_, err := s.RegisterView(ctx, high, time.Now())
	require.NoError(t, err)

	videos, err := s.ListVideosByCategory(ctx, "RECETAS")
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, high, videos[0].ID)
	assert.Equal(t, low, videos[1].ID)

	videos, err = s.ListVideosByCategory(ctx, "Plantas")
	require.NoError(t, err)
	assert.NotNil(t, videos)
	assert.Empty(t, videos)
}

func TestStore_SearchVideos(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.CreateVideo(ctx, pozole())
	require.NoError(t, err)

	tests := []struct {
		query string
		want  int
	}{
		{"pozole", 1},
		{"tradicional", 1},
		{"jauja", 1},
		{"Pozole Rojo", 1},
		{"sushi", 0},
		{"%", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			videos, err := s.SearchVideos(ctx, tt.query)
			require.NoError(t, err)
			require.Len(t, videos, tt.want)
			if tt.want == 1 {
				assert.Equal(t, id, videos[0].ID)
			}
		})
	}
}

func TestStore_RegisterViewConcurrent(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.CreateVideo(ctx, pozole())
	require.NoError(t, err)

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.RegisterView(ctx, id, time.Now())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	v, err := s.GetVideo(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(n), v.Views)

	history, err := s.ListHistory(ctx, id)
	require.NoError(t, err)
	assert.Len(t, history, n)

	_, err = s.RegisterView(ctx, 404, time.Now())
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestStore_DeleteVideo(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, _ := s.CreateVideo(ctx, pozole())
	other, _ := s.CreateVideo(ctx, &models.VideoInput{YouTubeID: "WjHvPTT1qfA", Title: "Tamales", Category: "Recetas"})
	for i := 0; i < 3; i++ {
		_, err := s.RegisterView(ctx, id, time.Now())
		require.NoError(t, err)
	}
	_, err := s.RegisterView(ctx, other, time.Now())
	require.NoError(t, err)

	deleted, err := s.DeleteVideo(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	history, err := s.ListHistory(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, history)

	history, err = s.ListHistory(ctx, other)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	deleted, err = s.DeleteVideo(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)

	// youtube_id is free again after deletion
	_, err = s.CreateVideo(ctx, pozole())
	assert.NoError(t, err)
}

func TestStore_GetStats(t *testing.T) {
	ctx := context.Background()
	dayStart := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	t.Run("empty", func(t *testing.T) {
		stats, err := New().GetStats(ctx, dayStart, dayEnd)
		require.NoError(t, err)
		assert.Zero(t, stats.TotalVideos)
		assert.Zero(t, stats.TotalViews)
		assert.Nil(t, stats.MostViewed)
		assert.NotNil(t, stats.ByCategory)
	})

	t.Run("populated", func(t *testing.T) {
		s := New()
		p, _ := s.CreateVideo(ctx, pozole())
		tm, _ := s.CreateVideo(ctx, &models.VideoInput{YouTubeID: "WjHvPTT1qfA", Title: "Tamales", Category: "Recetas"})
		v, _ := s.CreateVideo(ctx, &models.VideoInput{YouTubeID: "c7VJaqqDVzY", Title: "Vicente", Channel: "VFVEVO", Category: "Musica"})

		for _, at := range []time.Time{dayStart, dayStart.Add(time.Hour), dayStart.Add(-time.Second)} {
			_, err := s.RegisterView(ctx, v, at)
			require.NoError(t, err)
		}
		_, _ = s.RegisterView(ctx, p, dayEnd)
		_, _ = s.RegisterView(ctx, tm, dayStart.Add(5*time.Hour))

		stats, err := s.GetStats(ctx, dayStart, dayEnd)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalVideos)
		assert.Equal(t, int64(5), stats.TotalViews)
		assert.Equal(t, int64(3), stats.ViewsToday)
		assert.Equal(t, &models.MostViewed{Title: "Vicente", Views: 3, Channel: "VFVEVO"}, stats.MostViewed)
		assert.Equal(t, []models.CategoryStats{
			{Category: "Musica", Videos: 1, Views: 3},
			{Category: "Recetas", Videos: 2, Views: 2},
		}, stats.ByCategory)
	})

	t.Run("tie goes to lowest id", func(t *testing.T) {
		s := New()
		first, _ := s.CreateVideo(ctx, pozole())
		second, _ := s.CreateVideo(ctx, &models.VideoInput{YouTubeID: "WjHvPTT1qfA", Title: "Tamales", Category: "Recetas"})
		_, _ = s.RegisterView(ctx, second, dayStart)
		_, _ = s.RegisterView(ctx, first, dayStart)

		stats, err := s.GetStats(ctx, dayStart, dayEnd)
		require.NoError(t, err)
		assert.Equal(t, "Pozole Rojo", stats.MostViewed.Title)
	})
}

func TestNewSeeded(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 4)
	assert.Equal(t, "Musica", categories[0].Name)

	terms, err := s.ListBlockedTerms(ctx)
	require.NoError(t, err)
	assert.Len(t, terms, 38)
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New()
	_, err := s.ListVideos(ctx, models.OrderDefault)
	assert.ErrorIs(t, err, db.ErrStoreUnavailable)
	assert.ErrorIs(t, s.Ping(ctx), db.ErrStoreUnavailable)
}

func TestStore_NameOrderingIsBytewise(t *testing.T) {
	ctx := context.Background()
	s := New(WithCategories(
		models.Category{ID: 1, Name: "árbol"},
		models.Category{ID: 2, Name: "Zeta"},
		models.Category{ID: 3, Name: "Musica"},
	))

	for i, category := range []string{"musica", "Árboles", "Musica", "Zen"} {
		_, err := s.CreateVideo(ctx, &models.VideoInput{
			YouTubeID: []string{"order000000", "order000001", "order000002", "order000003"}[i],
			Title:     "Video " + category,
			Category:  category,
		})
		require.NoError(t, err)
	}

	now := time.Now().UTC()
	stats, err := s.GetStats(ctx, now, now.Add(time.Hour))
	require.NoError(t, err)
	names := make([]string, 0, len(stats.ByCategory))
	for _, c := range stats.ByCategory {
		names = append(names, c.Category)
	}
	assert.Equal(t, []string{"Musica", "Zen", "musica", "Árboles"}, names)

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	names = names[:0]
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Musica", "Zeta", "árbol"}, names)
}
