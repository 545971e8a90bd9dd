package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/youtube-seguro/video-catalog-go/internal/db"
	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
)

func (r *catalogRepository) RegisterView(ctx context.Context, videoID int64, at time.Time) (*models.HistoryEntry, error) {
	entry := &models.HistoryEntry{}

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		// The UPDATE takes the row lock, so concurrent views of the same
		// video serialize here and no increment is lost. Zero rows means
		// the video does not exist and the transaction rolls back.
		var views int64
		if err := tx.QueryRow(ctx,
			`UPDATE videos SET vistas = vistas + 1 WHERE id = $1 RETURNING vistas`,
			videoID,
		).Scan(&views); err != nil {
			return err
		}

		return tx.QueryRow(ctx,
			`INSERT INTO historial (video_id, fecha) VALUES ($1, $2) RETURNING id, video_id, fecha`,
			videoID, at,
		).Scan(&entry.ID, &entry.VideoID, &entry.ViewedAt)
	})
	if err != nil {
		return nil, db.WrapError(err, "register view")
	}

	return entry, nil
}

func (r *catalogRepository) ListHistory(ctx context.Context, videoID int64) ([]*models.HistoryEntry, error) {
	query := `
		SELECT id, video_id, fecha
		FROM historial
		WHERE video_id = $1
		ORDER BY fecha DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, videoID)
	if err != nil {
		return nil, db.WrapError(err, "list history")
	}
	defer rows.Close()

	entries := make([]*models.HistoryEntry, 0)
	for rows.Next() {
		entry := &models.HistoryEntry{}
		if err := rows.Scan(&entry.ID, &entry.VideoID, &entry.ViewedAt); err != nil {
			return nil, db.WrapError(err, "scan history entry")
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, db.WrapError(err, "iterate history")
	}

	return entries, nil
}
