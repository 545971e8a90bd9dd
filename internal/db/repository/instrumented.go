package repository

import (
	"context"
	"time"

	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
	"github.com/youtube-seguro/video-catalog-go/internal/metrics"
)

// instrumentedStore records latency and error kinds of every call on the
// wrapped store.
type instrumentedStore struct {
	next CatalogStore
}

// Instrument wraps a CatalogStore with Prometheus instrumentation.
func Instrument(next CatalogStore) CatalogStore {
	return &instrumentedStore{next: next}
}

func (s *instrumentedStore) CreateVideo(ctx context.Context, in *models.VideoInput) (int64, error) {
	start := time.Now()
	id, err := s.next.CreateVideo(ctx, in)
	metrics.RecordStoreQuery("create_video", time.Since(start), err)
	return id, err
}

func (s *instrumentedStore) DeleteVideo(ctx context.Context, id int64) (bool, error) {
	start := time.Now()
	deleted, err := s.next.DeleteVideo(ctx, id)
	metrics.RecordStoreQuery("delete_video", time.Since(start), err)
	return deleted, err
}

func (s *instrumentedStore) GetVideo(ctx context.Context, id int64) (*models.Video, error) {
	start := time.Now()
	video, err := s.next.GetVideo(ctx, id)
	metrics.RecordStoreQuery("get_video", time.Since(start), err)
	return video, err
}

func (s *instrumentedStore) ListVideos(ctx context.Context, order models.ListOrder) ([]*models.Video, error) {
	start := time.Now()
	videos, err := s.next.ListVideos(ctx, order)
	metrics.RecordStoreQuery("list_videos", time.Since(start), err)
	return videos, err
}

func (s *instrumentedStore) ListVideosByCategory(ctx context.Context, category string) ([]*models.Video, error) {
	start := time.Now()
	videos, err := s.next.ListVideosByCategory(ctx, category)
	metrics.RecordStoreQuery("list_videos_by_category", time.Since(start), err)
	return videos, err
}

func (s *instrumentedStore) SearchVideos(ctx context.Context, query string) ([]*models.Video, error) {
	start := time.Now()
	videos, err := s.next.SearchVideos(ctx, query)
	metrics.RecordStoreQuery("search_videos", time.Since(start), err)
	return videos, err
}

func (s *instrumentedStore) RegisterView(ctx context.Context, videoID int64, at time.Time) (*models.HistoryEntry, error) {
	start := time.Now()
	entry, err := s.next.RegisterView(ctx, videoID, at)
	metrics.RecordStoreQuery("register_view", time.Since(start), err)
	return entry, err
}

func (s *instrumentedStore) ListHistory(ctx context.Context, videoID int64) ([]*models.HistoryEntry, error) {
	start := time.Now()
	entries, err := s.next.ListHistory(ctx, videoID)
	metrics.RecordStoreQuery("list_history", time.Since(start), err)
	return entries, err
}

func (s *instrumentedStore) GetStats(ctx context.Context, dayStart, dayEnd time.Time) (*models.Stats, error) {
	start := time.Now()
	stats, err := s.next.GetStats(ctx, dayStart, dayEnd)
	metrics.RecordStoreQuery("get_stats", time.Since(start), err)
	return stats, err
}

func (s *instrumentedStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
	start := time.Now()
	categories, err := s.next.ListCategories(ctx)
	metrics.RecordStoreQuery("list_categories", time.Since(start), err)
	return categories, err
}

func (s *instrumentedStore) ListBlockedTerms(ctx context.Context) ([]*models.BlockedTerm, error) {
	start := time.Now()
	terms, err := s.next.ListBlockedTerms(ctx)
	metrics.RecordStoreQuery("list_blocked_terms", time.Since(start), err)
	return terms, err
}

func (s *instrumentedStore) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.next.Ping(ctx)
	metrics.RecordStoreQuery("ping", time.Since(start), err)
	return err
}
