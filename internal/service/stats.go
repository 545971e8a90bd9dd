package service

import (
	"context"
	"fmt"
	"time"

	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
	"github.com/youtube-seguro/video-catalog-go/internal/db/repository"
)

// StatsAggregator computes catalog statistics on demand.
type StatsAggregator struct {
	store repository.CatalogStore
	now   Clock
}

func NewStatsAggregator(store repository.CatalogStore, now Clock) *StatsAggregator {
	if now == nil {
		now = time.Now
	}
	return &StatsAggregator{store: store, now: now}
}

// GetStats summarizes the catalog. "Today" is the current UTC calendar day.
func (sa *StatsAggregator) GetStats(ctx context.Context) (*models.Stats, error) {
	dayStart, dayEnd := DayBounds(sa.now())

	stats, err := sa.store.GetStats(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}

// DayBounds returns [00:00 UTC, next 00:00 UTC) of the day containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
