package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"photoshare/internal/model"
)

type PhotoRepository struct {
	pool *pgxpool.Pool
}

func NewPhotoRepository(pool *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

func (r *PhotoRepository) Create(ctx context.Context, p model.Photo) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO photos (user_id, image_url, caption, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		p.UserID, p.ImageURL, p.Caption, p.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create photo: %w", err)
	}
	return id, nil
}

func (r *PhotoRepository) FindByID(ctx context.Context, id int64) (model.Photo, error) {
	var p model.Photo
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, image_url, caption, created_at FROM photos WHERE id = $1`, id).
		Scan(&p.ID, &p.UserID, &p.ImageURL, &p.Caption, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Photo{}, model.ErrPhotoNotFound
	}
	if err != nil {
		return model.Photo{}, fmt.Errorf("find photo by id: %w", err)
	}
	return p, nil
}

func (r *PhotoRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Photo, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, image_url, caption, created_at
		 FROM photos WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	photos := make([]model.Photo, 0)
	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.ID, &p.UserID, &p.ImageURL, &p.Caption, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan photo row: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
