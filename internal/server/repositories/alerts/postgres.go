package alerts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

const alertColumns = `a.id, a.type, a.camera_id, a.severity, a.message, a.resolved, a.resolved_at, a.resolved_by,
		a.created_at, a.updated_at, c.id, c.name, c.location`

type scanner interface {
	Scan(dest ...any) error
}

func scanAlert(s scanner) (*models.Alert, error) {
	a := &models.Alert{}
	var resolvedAt sql.NullTime
	var resolvedBy, camID, camName, camLocation sql.NullString

	err := s.Scan(&a.ID, &a.Type, &a.CameraID, &a.Severity, &a.Message, &a.Resolved, &resolvedAt, &resolvedBy,
		&a.CreatedAt, &a.UpdatedAt, &camID, &camName, &camLocation)
	if err != nil {
		return nil, err
	}

	if resolvedAt.Valid {
		a.ResolvedAt = &resolvedAt.Time
	}
	if resolvedBy.Valid {
		a.ResolvedBy = &resolvedBy.String
	}
	if camID.Valid {
		a.Camera = &models.CameraSummary{ID: camID.String, Name: camName.String, Location: camLocation.String}
	}
	return a, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Alert, error) {
	query := `SELECT ` + alertColumns + `
		FROM alerts a
		LEFT JOIN cameras c ON c.id = a.camera_id
		ORDER BY a.created_at DESC, a.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Alert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, alert *models.Alert) (*models.Alert, error) {

	query :=
		`INSERT INTO alerts (type, camera_id, severity, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, resolved, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, alert.Type, alert.CameraID, alert.Severity, alert.Message).
		Scan(&alert.ID, &alert.Resolved, &alert.CreatedAt, &alert.UpdatedAt)

	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("unknown camera %s: %w", alert.CameraID, common.ErrorValidation)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return alert, nil
}

func (r *PostgresRepository) Resolve(ctx context.Context, id, userID string, at time.Time) (*models.Alert, error) {
	query :=
		`WITH a AS (
			UPDATE alerts SET resolved = TRUE, resolved_at = $2, resolved_by = $3, updated_at = NOW()
			WHERE id = $1 AND resolved = FALSE
			RETURNING *
		)
		SELECT ` + alertColumns + `
		FROM a
		LEFT JOIN cameras c ON c.id = a.camera_id`

	a, err := scanAlert(r.db.QueryRowContext(ctx, query, id, at, userID))
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("db error: %w", err)
	}

	var exists bool
	err = r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM alerts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if exists {
		return nil, common.ErrAlreadyResolved
	}
	return nil, common.ErrorNotFound
}
