package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/guardianeye/guardianeye/internal/common"
	"github.com/guardianeye/guardianeye/internal/server/models"
	"github.com/guardianeye/guardianeye/internal/server/repositories/repomanager"
)

type AlertService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewAlertService(db *sql.DB, m repomanager.RepositoryManager) *AlertService {
	return &AlertService{db: db, repomanager: m, now: time.Now}
}

func (s *AlertService) List(ctx context.Context) ([]*models.Alert, error) {
	return s.repomanager.Alerts(s.db).List(ctx)
}

func (s *AlertService) Create(ctx context.Context, alert *models.Alert) (*models.Alert, error) {
	if _, err := uuid.Parse(alert.CameraID); err != nil {
		return nil, fmt.Errorf("unknown camera %s: %w", alert.CameraID, common.ErrorValidation)
	}
	return s.repomanager.Alerts(s.db).Create(ctx, alert)
}

// Resolve marks an alert resolved by userID. An alert can be resolved once;
// later calls yield common.ErrAlreadyResolved.
func (s *AlertService) Resolve(ctx context.Context, id, userID string) (*models.Alert, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Alerts(s.db).Resolve(ctx, id, userID, s.now().UTC())
}
