package cameras

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guardianeye/guardianeye/internal/common"
	"github.com/guardianeye/guardianeye/internal/dbx"
	"github.com/guardianeye/guardianeye/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const cameraColumns = `id, name, location, stream_url, status, type, resolution, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanCamera(s scanner) (*models.Camera, error) {
	c := &models.Camera{}
	err := s.Scan(&c.ID, &c.Name, &c.Location, &c.StreamURL, &c.Status, &c.Type, &c.Resolution, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Camera, error) {
	query := `SELECT ` + cameraColumns + ` FROM cameras ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Camera{}
	for rows.Next() {
		c, err := scanCamera(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, camera *models.Camera) (*models.Camera, error) {

	query :=
		`INSERT INTO cameras (name, location, stream_url, status, type, resolution)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		camera.Name, camera.Location, camera.StreamURL, camera.Status, camera.Type, camera.Resolution).
		Scan(&camera.ID, &camera.CreatedAt, &camera.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return camera, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.CameraStatus) (*models.Camera, error) {
	query :=
		`UPDATE cameras SET status = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING ` + cameraColumns

	c, err := scanCamera(r.db.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}
