package alerts

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guardianeye/guardianeye/internal/common"
	"github.com/guardianeye/guardianeye/internal/server/models"
)

type MemoryRepository struct {
	mu      sync.Mutex
	items   []*models.Alert
	cameras CameraLookup
	now     func() time.Time
}

func NewMemoryRepository(cameras CameraLookup) *MemoryRepository {
	return &MemoryRepository{cameras: cameras, now: time.Now}
}

func (r *MemoryRepository) withCamera(a *models.Alert) *models.Alert {
	out := *a
	if s, ok := r.cameras.Summary(a.CameraID); ok {
		out.Camera = s
	}
	return &out
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// newest insertion first so equal timestamps keep a stable, recent-first order
	result := make([]*models.Alert, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		result = append(result, r.withCamera(r.items[i]))
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) Create(ctx context.Context, alert *models.Alert) (*models.Alert, error) {
	if _, ok := r.cameras.Summary(alert.CameraID); !ok {
		return nil, fmt.Errorf("unknown camera %s: %w", alert.CameraID, common.ErrorValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	alert.ID = uuid.NewString()
	alert.Resolved = false
	alert.ResolvedAt = nil
	alert.ResolvedBy = nil
	alert.CreatedAt = now
	alert.UpdatedAt = now

	stored := *alert
	stored.Camera = nil
	r.items = append(r.items, &stored)
	return alert, nil
}

func (r *MemoryRepository) Resolve(ctx context.Context, id, userID string, at time.Time) (*models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.items {
		if a.ID != id {
			continue
		}
		if a.Resolved {
			return nil, common.ErrAlreadyResolved
		}
		resolvedAt, resolvedBy := at, userID
		a.Resolved = true
		a.ResolvedAt = &resolvedAt
		a.ResolvedBy = &resolvedBy
		a.UpdatedAt = r.now()
		return r.withCamera(a), nil
	}
	return nil, common.ErrorNotFound
}
