package alerts

import (
	"context"
	"testing"
	"time"

	"github.com/guardianeye/guardianeye/internal/common"
	"github.com/guardianeye/guardianeye/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCameras map[string]*models.CameraSummary

func (s stubCameras) Summary(id string) (*models.CameraSummary, bool) {
	c, ok := s[id]
	return c, ok
}

func TestMemoryRepository_ResolveOnce(t *testing.T) {
	r := NewMemoryRepository(stubCameras{"c-1": {ID: "c-1", Name: "Gate"}})
	ctx := context.Background()

	a, err := r.Create(ctx, &models.Alert{Type: models.AlertMotion, CameraID: "c-1", Severity: models.SeverityLow, Message: "m"})
	require.NoError(t, err)
	assert.False(t, a.Resolved)

	at := time.Now()
	got, err := r.Resolve(ctx, a.ID, "u-1", at)
	require.NoError(t, err)
	assert.True(t, got.Resolved)
	require.NotNil(t, got.ResolvedAt)
	require.NotNil(t, got.ResolvedBy)
	assert.Equal(t, "u-1", *got.ResolvedBy)
	assert.Equal(t, "Gate", got.Camera.Name)

	_, err = r.Resolve(ctx, a.ID, "u-2", at)
	assert.ErrorIs(t, err, common.ErrAlreadyResolved)

	_, err = r.Resolve(ctx, "missing", "u-1", at)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_ListNewestFirst(t *testing.T) {
	r := NewMemoryRepository(stubCameras{"c-1": {ID: "c-1"}})
	ctx := context.Background()

	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	first, err := r.Create(ctx, &models.Alert{CameraID: "c-1"})
	require.NoError(t, err)
	clock = clock.Add(time.Minute)
	second, err := r.Create(ctx, &models.Alert{CameraID: "c-1"})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.Alert{CameraID: "c-404"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}
