// Package repository implements the catalog store on PostgreSQL.
package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/youtube-seguro/video-catalog-go/internal/db"
	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
)

// CatalogStore is the storage contract of the catalog. Every backend
// (PostgreSQL here, the in-memory store for tests) enforces the same
// uniqueness, cascade and ordering rules.
type CatalogStore interface {
	// CreateVideo inserts a video and returns its id. A reused youtube_id
	// fails with db.ErrDuplicateKey.
	CreateVideo(ctx context.Context, in *models.VideoInput) (int64, error)

	// DeleteVideo removes a video and its history. It reports whether a row
	// existed; a missing id is not an error.
	DeleteVideo(ctx context.Context, id int64) (bool, error)

	// GetVideo retrieves a single video or db.ErrNotFound.
	GetVideo(ctx context.Context, id int64) (*models.Video, error)

	// ListVideos returns the whole catalog in the requested order.
	ListVideos(ctx context.Context, order models.ListOrder) ([]*models.Video, error)

	// ListVideosByCategory matches categoria case-insensitively, most viewed first.
	ListVideosByCategory(ctx context.Context, category string) ([]*models.Video, error)

	// SearchVideos matches query as a case-insensitive substring of
	// titulo, descripcion or canal, most viewed first.
	SearchVideos(ctx context.Context, query string) ([]*models.Video, error)

	// RegisterView increments vistas and appends a history entry atomically.
	RegisterView(ctx context.Context, videoID int64, at time.Time) (*models.HistoryEntry, error)

	// ListHistory returns the view history of one video, newest first.
	ListHistory(ctx context.Context, videoID int64) ([]*models.HistoryEntry, error)

	// GetStats aggregates the catalog from one snapshot. Views today are
	// history entries in [dayStart, dayEnd).
	GetStats(ctx context.Context, dayStart, dayEnd time.Time) (*models.Stats, error)

	// ListCategories returns all categories ordered by name.
	ListCategories(ctx context.Context) ([]*models.Category, error)

	// ListBlockedTerms returns every blocked term.
	ListBlockedTerms(ctx context.Context) ([]*models.BlockedTerm, error)

	// Ping checks backend health.
	Ping(ctx context.Context) error
}

type catalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository creates a CatalogStore backed by a pgx pool.
func NewCatalogRepository(pool *pgxpool.Pool) CatalogStore {
	return &catalogRepository{pool: pool}
}

func (r *catalogRepository) Ping(ctx context.Context) error {
	return db.WrapError(r.pool.Ping(ctx), "ping")
}
