// Package service holds the catalog business logic: queries, admin writes,
// view tracking, statistics and moderation.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
	"github.com/youtube-seguro/video-catalog-go/internal/db/repository"
	"github.com/youtube-seguro/video-catalog-go/internal/metrics"
	"github.com/youtube-seguro/video-catalog-go/internal/validation"
	"github.com/youtube-seguro/video-catalog-go/pkg/logger"
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// CatalogService answers catalog queries and applies admin writes.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type CatalogService struct {
	store        repository.CatalogStore
	validator    *validation.Validator
	moderator    *Moderator
	publisher    EventPublisher
	defaultOrder models.ListOrder
	now          Clock
}

// NewCatalogService creates a new CatalogService. A nil publisher disables
// events; a nil moderator disables moderation.
func NewCatalogService(
	store repository.CatalogStore,
	validator *validation.Validator,
	moderator *Moderator,
	publisher EventPublisher,
	defaultOrder models.ListOrder,
) *CatalogService {
	if defaultOrder == "" {
		defaultOrder = models.OrderDefault
	}
	return &CatalogService{
		store:        store,
		validator:    validator,
		moderator:    moderator,
		publisher:    publisher,
		defaultOrder: defaultOrder,
		now:          time.Now,
	}
}

// ListVideos returns the whole catalog. An empty order falls back to the
// configured default.
func (s *CatalogService) ListVideos(ctx context.Context, order models.ListOrder) ([]*models.Video, error) {
	if order == "" {
		order = s.defaultOrder
	}
	return s.store.ListVideos(ctx, order)
}

func (s *CatalogService) GetVideo(ctx context.Context, id int64) (*models.Video, error) {
	return s.store.GetVideo(ctx, id)
}

// ListByCategory returns the videos of one category, most viewed first.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]*models.Video, error) {
	category, err := validation.NormalizeCategory(category)
	if err != nil {
		return nil, err
	}
	return s.store.ListVideosByCategory(ctx, category)
}

// Search returns the trimmed query together with the matching videos.
func (s *CatalogService) Search(ctx context.Context, query string) (string, []*models.Video, error) {
	query, err := validation.NormalizeQuery(query)
	if err != nil {
		return "", nil, err
	}
	videos, err := s.store.SearchVideos(ctx, query)
	if err != nil {
		return "", nil, err
	}
	return query, videos, nil
}

// ListHistory returns the views of an existing video, newest first.
func (s *CatalogService) ListHistory(ctx context.Context, id int64) ([]*models.HistoryEntry, error) {
	if _, err := s.store.GetVideo(ctx, id); err != nil {
		return nil, err
	}
	return s.store.ListHistory(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CatalogService) ListBlockedTerms(ctx context.Context) ([]*models.BlockedTerm, error) {
	return s.store.ListBlockedTerms(ctx)
}

// CreateVideo validates, moderates and stores a new video.
func (s *CatalogService) CreateVideo(ctx context.Context, in *models.VideoInput) (int64, error) {
	if err := s.validator.ValidateVideoInput(in); err != nil {
		logger.Log.Warn("Video input rejected", zap.Error(err))
		return 0, err
	}

	if err := s.moderator.Check(ctx, in); err != nil {
		return 0, err
	}

	id, err := s.store.CreateVideo(ctx, in)
	if err != nil {
		return 0, fmt.Errorf("create video %s: %w", in.YouTubeID, err)
	}

	metrics.VideosCreated.Inc()
	logger.Log.Info("Video added to catalog",
		zap.Int64("videoId", id),
		zap.String("youtubeId", in.YouTubeID),
		zap.String("category", in.Category),
	)

	publishBestEffort(ctx, s.publisher,
		models.NewCatalogEvent(models.EventVideoCreated, id, in.YouTubeID, s.now().UTC()))

	return id, nil
}

// DeleteVideo removes a video and its history. It reports whether the video
// existed; deleting a missing id succeeds.
func (s *CatalogService) DeleteVideo(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.DeleteVideo(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete video %d: %w", id, err)
	}
	if !deleted {
		logger.Log.Debug("Delete of missing video ignored", zap.Int64("videoId", id))
		return false, nil
	}

	metrics.VideosDeleted.Inc()
	logger.Log.Info("Video removed from catalog", zap.Int64("videoId", id))

	publishBestEffort(ctx, s.publisher,
		models.NewCatalogEvent(models.EventVideoDeleted, id, "", s.now().UTC()))

	return true, nil
}
