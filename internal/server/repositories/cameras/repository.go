package cameras

import (
	"context"

	"github.com/guardianeye/guardianeye/internal/server/models"
)

type Repository interface {
	// List returns every camera in registration order.
	List(ctx context.Context) ([]*models.Camera, error)
	Create(ctx context.Context, camera *models.Camera) (*models.Camera, error)
	// UpdateStatus sets the status of camera id and returns the updated
	// record, or common.ErrorNotFound.
	UpdateStatus(ctx context.Context, id string, status models.CameraStatus) (*models.Camera, error)
}
