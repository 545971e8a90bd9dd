package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/youtube-seguro/video-catalog-go/internal/db"
	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
)

func (r *catalogRepository) GetStats(ctx context.Context, dayStart, dayEnd time.Time) (*models.Stats, error) {
	stats := &models.Stats{ByCategory: make([]models.CategoryStats, 0)}

	// REPEATABLE READ pins one snapshot for every figure below.
	txOptions := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

	err := pgx.BeginTxFunc(ctx, r.pool, txOptions, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT categoria, COUNT(*), COALESCE(SUM(vistas), 0)
			FROM videos
			GROUP BY categoria
			ORDER BY categoria COLLATE "C"
		`)
		if err != nil {
			return err
		}

		for rows.Next() {
			var c models.CategoryStats
			if err := rows.Scan(&c.Category, &c.Videos, &c.Views); err != nil {
				rows.Close()
				return err
			}
			stats.ByCategory = append(stats.ByCategory, c)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		stats.FillTotals()

		var top models.MostViewed
		err = tx.QueryRow(ctx, `
			SELECT titulo, vistas, canal
			FROM videos
			ORDER BY vistas DESC, id ASC
			LIMIT 1
		`).Scan(&top.Title, &top.Views, &top.Channel)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
		case err != nil:
			return err
		default:
			stats.MostViewed = &top
		}

		return tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM historial WHERE fecha >= $1 AND fecha < $2`,
			dayStart, dayEnd,
		).Scan(&stats.ViewsToday)
	})
	if err != nil {
		return nil, db.WrapError(err, "get stats")
	}

	return stats, nil
}
