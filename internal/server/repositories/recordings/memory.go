package recordings

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
	mu      sync.RWMutex
	items   []*models.Recording
	cameras CameraLookup
	now     func() time.Time
}

func NewMemoryRepository(cameras CameraLookup) *MemoryRepository {
	return &MemoryRepository{cameras: cameras, now: time.Now}
}

func (r *MemoryRepository) withCamera(rec *models.Recording) *models.Recording {
	out := *rec
	if s, ok := r.cameras.Summary(rec.CameraID); ok {
		out.Camera = s
	}
	return &out
}

func (r *MemoryRepository) filter(keep func(*models.Recording) bool) []*models.Recording {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*models.Recording{}
	for _, rec := range r.items {
		if keep(rec) {
			result = append(result, r.withCamera(rec))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime.After(result[j].StartTime)
	})
	return result
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Recording, error) {
	return r.filter(func(*models.Recording) bool { return true }), nil
}

func (r *MemoryRepository) ListByCamera(ctx context.Context, cameraID string) ([]*models.Recording, error) {
	return r.filter(func(rec *models.Recording) bool { return rec.CameraID == cameraID }), nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Recording, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.items {
		if rec.ID == id {
			return r.withCamera(rec), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Create(ctx context.Context, rec *models.Recording) (*models.Recording, error) {
	if _, ok := r.cameras.Summary(rec.CameraID); !ok {
		return nil, fmt.Errorf("unknown camera %s: %w", rec.CameraID, common.ErrorValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	stored := *rec
	stored.Camera = nil
	r.items = append(r.items, &stored)
	return rec, nil
}
