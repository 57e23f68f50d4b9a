package alerts

import (
	"context"
	"time"

	"github.com/guardianeye/guardianeye/internal/server/models"
)

type Repository interface {
	// List returns all alerts, newest first, with the camera summary attached.
	List(ctx context.Context) ([]*models.Alert, error)
	// Create stores an unresolved alert. An unknown camera yields
	// common.ErrorValidation.
	Create(ctx context.Context, alert *models.Alert) (*models.Alert, error)
	// Resolve marks alert id resolved by userID at the given time. It returns
	// common.ErrorNotFound for an unknown id and common.ErrAlreadyResolved if
	// the alert was resolved before.
	Resolve(ctx context.Context, id, userID string, at time.Time) (*models.Alert, error)
}

// CameraLookup resolves camera references for the in-memory repository.
type CameraLookup interface {
	Summary(id string) (*models.CameraSummary, bool)
}
