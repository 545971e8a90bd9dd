package repository

import (
	"context"

	"github.com/youtube-seguro/video-catalog-go/internal/db"
	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
)

func (r *catalogRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, nombre, icono, color FROM categorias ORDER BY nombre COLLATE "C"`)
	if err != nil {
		return nil, db.WrapError(err, "list categories")
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color); err != nil {
			return nil, db.WrapError(err, "scan category")
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, db.WrapError(err, "iterate categories")
	}

	return categories, nil
}

func (r *catalogRepository) ListBlockedTerms(ctx context.Context) ([]*models.BlockedTerm, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, palabra FROM palabras_bloqueadas ORDER BY palabra COLLATE "C"`)
	if err != nil {
		return nil, db.WrapError(err, "list blocked terms")
	}
	defer rows.Close()

	terms := make([]*models.BlockedTerm, 0)
	for rows.Next() {
		term := &models.BlockedTerm{}
		if err := rows.Scan(&term.ID, &term.Term); err != nil {
			return nil, db.WrapError(err, "scan blocked term")
		}
		terms = append(terms, term)
	}

	if err := rows.Err(); err != nil {
		return nil, db.WrapError(err, "iterate blocked terms")
	}

	return terms, nil
}
