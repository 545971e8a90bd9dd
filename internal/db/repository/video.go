package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/youtube-seguro/video-catalog-go/internal/db"
	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
)

const videoColumns = `id, youtube_id, titulo, canal, thumbnail, duracion, descripcion, categoria, fecha_agregado, vistas, orden`

func (r *catalogRepository) CreateVideo(ctx context.Context, in *models.VideoInput) (int64, error) {
	query := `
		INSERT INTO videos (youtube_id, titulo, canal, thumbnail, duracion, descripcion, categoria, orden)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		in.YouTubeID,
		in.Title,
		in.Channel,
		in.Thumbnail,
		in.Duration,
		in.Description,
		in.Category,
		in.Order,
	).Scan(&id)
	if err != nil {
		return 0, db.WrapError(err, "create video")
	}

	return id, nil
}

func (r *catalogRepository) DeleteVideo(ctx context.Context, id int64) (bool, error) {
	// historial rows go with the video through ON DELETE CASCADE.
	result, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return false, db.WrapError(err, "delete video")
	}

	return result.RowsAffected() > 0, nil
}

func (r *catalogRepository) GetVideo(ctx context.Context, id int64) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	video, err := scanVideo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, db.WrapError(err, "get video")
	}

	return video, nil
}

func (r *catalogRepository) ListVideos(ctx context.Context, order models.ListOrder) ([]*models.Video, error) {
	orderBy := `orden DESC, fecha_agregado DESC, id DESC`
	if order == models.OrderRandom {
		orderBy = `random()`
	}

	rows, err := r.pool.Query(ctx, `SELECT `+videoColumns+` FROM videos ORDER BY `+orderBy)
	if err != nil {
		return nil, db.WrapError(err, "list videos")
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (r *catalogRepository) ListVideosByCategory(ctx context.Context, category string) ([]*models.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE LOWER(categoria) = LOWER($1)
		ORDER BY vistas DESC, fecha_agregado DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		return nil, db.WrapError(err, "list videos by category")
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (r *catalogRepository) SearchVideos(ctx context.Context, q string) ([]*models.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE titulo ILIKE $1 ESCAPE '\' OR descripcion ILIKE $1 ESCAPE '\' OR canal ILIKE $1 ESCAPE '\'
		ORDER BY vistas DESC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, "%"+escapeLike(q)+"%")
	if err != nil {
		return nil, db.WrapError(err, "search videos")
	}
	defer rows.Close()

	return scanVideos(rows)
}

// escapeLike makes LIKE metacharacters in user input match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanVideo(row pgx.Row) (*models.Video, error) {
	video := &models.Video{}
	err := row.Scan(
		&video.ID,
		&video.YouTubeID,
		&video.Title,
		&video.Channel,
		&video.Thumbnail,
		&video.Duration,
		&video.Description,
		&video.Category,
		&video.AddedAt,
		&video.Views,
		&video.Order,
	)
	if err != nil {
		return nil, err
	}
	return video, nil
}

// Helper function to scan multiple videos from query results
func scanVideos(rows pgx.Rows) ([]*models.Video, error) {
	videos := make([]*models.Video, 0)

	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, db.WrapError(err, "scan video")
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, db.WrapError(err, "iterate videos")
	}

	return videos, nil
}
