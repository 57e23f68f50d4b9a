package recordings

import (
	"context"

	"github.com/guardianeye/guardianeye/internal/server/models"
)

type Repository interface {
	// List returns all recordings, newest start time first, with the owning
	// camera summary attached.
	List(ctx context.Context) ([]*models.Recording, error)
	ListByCamera(ctx context.Context, cameraID string) ([]*models.Recording, error)
	Get(ctx context.Context, id string) (*models.Recording, error)
	// Create stores a recording. An unknown camera yields common.ErrorValidation.
	Create(ctx context.Context, recording *models.Recording) (*models.Recording, error)
}

// CameraLookup resolves camera references for the in-memory repository.
type CameraLookup interface {
	Summary(id string) (*models.CameraSummary, bool)
}
