package recordings

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

const selectRecordings = `SELECT r.id, r.camera_id, r.start_time, r.end_time, r.duration, r.file_url, r.type, r.size,
		r.created_at, r.updated_at, c.id, c.name, c.location
		FROM recordings r
		LEFT JOIN cameras c ON c.id = r.camera_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecording(s scanner) (*models.Recording, error) {
	rec := &models.Recording{}
	var camID, camName, camLocation sql.NullString

	err := s.Scan(&rec.ID, &rec.CameraID, &rec.StartTime, &rec.EndTime, &rec.Duration, &rec.FileURL, &rec.Type, &rec.Size,
		&rec.CreatedAt, &rec.UpdatedAt, &camID, &camName, &camLocation)
	if err != nil {
		return nil, err
	}

	if camID.Valid {
		rec.Camera = &models.CameraSummary{ID: camID.String, Name: camName.String, Location: camLocation.String}
	}
	return rec, nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Recording, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Recording{}
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Recording, error) {
	return r.query(ctx, selectRecordings+` ORDER BY r.start_time DESC, r.id`)
}

func (r *PostgresRepository) ListByCamera(ctx context.Context, cameraID string) ([]*models.Recording, error) {
	return r.query(ctx, selectRecordings+` WHERE r.camera_id = $1 ORDER BY r.start_time DESC, r.id`, cameraID)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Recording, error) {
	rec, err := scanRecording(r.db.QueryRowContext(ctx, selectRecordings+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.Recording) (*models.Recording, error) {

	query :=
		`INSERT INTO recordings (camera_id, start_time, end_time, duration, file_url, type, size)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		rec.CameraID, rec.StartTime, rec.EndTime, rec.Duration, rec.FileURL, rec.Type, rec.Size).
		Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("unknown camera %s: %w", rec.CameraID, common.ErrorValidation)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}
