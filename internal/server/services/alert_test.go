package services

import (
	"context"
	"testing"
	"time"

	"github.com/guardianeye/guardianeye/internal/common"
	"github.com/guardianeye/guardianeye/internal/server/models"
	"github.com/guardianeye/guardianeye/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertService_ResolveOnce(t *testing.T) {
	m := repomanager.NewMemoryRepositoryManager()
	cams := NewCameraService(nil, m)
	s := NewAlertService(nil, m)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	cam, err := cams.Create(ctx, &models.Camera{Name: "Gate", Type: models.CameraOutdoor})
	require.NoError(t, err)

	a, err := s.Create(ctx, &models.Alert{Type: models.AlertMotion, CameraID: cam.ID, Severity: models.SeverityHigh, Message: "motion"})
	require.NoError(t, err)
	assert.False(t, a.Resolved)
	assert.Nil(t, a.ResolvedAt)

	res, err := s.Resolve(ctx, a.ID, "u-1")
	require.NoError(t, err)
	assert.True(t, res.Resolved)
	assert.Equal(t, fixed, *res.ResolvedAt)
	assert.Equal(t, "u-1", *res.ResolvedBy)

	_, err = s.Resolve(ctx, a.ID, "u-2")
	assert.ErrorIs(t, err, common.ErrAlreadyResolved)

	_, err = s.Resolve(ctx, "nope", "u-1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Gate", list[0].Camera.Name)
}

func TestAlertService_CreateUnknownCamera(t *testing.T) {
	s := NewAlertService(nil, repomanager.NewMemoryRepositoryManager())
	ctx := context.Background()

	_, err := s.Create(ctx, &models.Alert{CameraID: "bad"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Create(ctx, &models.Alert{CameraID: "8f2b8f3e-2f57-4d0e-9a43-3c0f1a3e6f11"})
	assert.ErrorIs(t, err, common.ErrorValidation)
}
