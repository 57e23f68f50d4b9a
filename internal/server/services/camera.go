package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/guardianeye/guardianeye/internal/common"
	"github.com/guardianeye/guardianeye/internal/server/models"
	"github.com/guardianeye/guardianeye/internal/server/repositories/repomanager"
)

type CameraService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCameraService(db *sql.DB, m repomanager.RepositoryManager) *CameraService {
	return &CameraService{db: db, repomanager: m}
}

func (s *CameraService) List(ctx context.Context) ([]*models.Camera, error) {
	return s.repomanager.Cameras(s.db).List(ctx)
}

// Create registers a camera, defaulting status to offline and resolution to 1080p.
func (s *CameraService) Create(ctx context.Context, camera *models.Camera) (*models.Camera, error) {
	if camera.Status == "" {
		camera.Status = models.CameraOffline
	}
	if camera.Resolution == "" {
		camera.Resolution = models.DefaultResolution
	}
	return s.repomanager.Cameras(s.db).Create(ctx, camera)
}

func (s *CameraService) UpdateStatus(ctx context.Context, id string, status models.CameraStatus) (*models.Camera, error) {
	switch status {
	case models.CameraOnline, models.CameraOffline, models.CameraMaintenance:
	default:
		return nil, fmt.Errorf("invalid status %q: %w", status, common.ErrorValidation)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Cameras(s.db).UpdateStatus(ctx, id, status)
}
