package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
	"github.com/youtube-seguro/video-catalog-go/internal/db/repository"
	"github.com/youtube-seguro/video-catalog-go/internal/metrics"
	"github.com/youtube-seguro/video-catalog-go/pkg/logger"
)

// ViewTracker records views. The counter increment and the history entry are
// written by the store in one transaction.
type ViewTracker struct {
	store     repository.CatalogStore
	publisher EventPublisher
	now       Clock
}

func NewViewTracker(store repository.CatalogStore, publisher EventPublisher, now Clock) *ViewTracker {
	if now == nil {
		now = time.Now
	}
	return &ViewTracker{store: store, publisher: publisher, now: now}
}

// RegisterView counts one view of video id. db.ErrNotFound when the video
// does not exist.
func (vt *ViewTracker) RegisterView(ctx context.Context, id int64) (*models.HistoryEntry, error) {
	at := vt.now().UTC()

	entry, err := vt.store.RegisterView(ctx, id, at)
	if err != nil {
		return nil, fmt.Errorf("register view %d: %w", id, err)
	}

	metrics.ViewsRegistered.Inc()
	logger.Log.Debug("View registered", zap.Int64("videoId", id), zap.Int64("historyId", entry.ID))

	publishBestEffort(ctx, vt.publisher,
		models.NewCatalogEvent(models.EventViewRegistered, id, "", at))

	return entry, nil
}
