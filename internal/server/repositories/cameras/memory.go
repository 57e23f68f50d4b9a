package cameras

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guardianeye/guardianeye/internal/common"
	"github.com/guardianeye/guardianeye/internal/server/models"
)

// MemoryRepository keeps cameras in process memory, in registration order.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*models.Camera
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]*models.Camera{}, now: time.Now}
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Camera, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Camera, 0, len(r.order))
	for _, id := range r.order {
		c := *r.byID[id]
		result = append(result, &c)
	}
	return result, nil
}

func (r *MemoryRepository) Create(ctx context.Context, camera *models.Camera) (*models.Camera, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	camera.ID = uuid.NewString()
	camera.CreatedAt = now
	camera.UpdatedAt = now

	stored := *camera
	r.byID[camera.ID] = &stored
	r.order = append(r.order, camera.ID)
	return camera, nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, status models.CameraStatus) (*models.Camera, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.Status = status
	c.UpdatedAt = r.now()

	out := *c
	return &out, nil
}

// Summary returns the embeddable view of camera id. The in-memory recording
// and alert repositories use it to resolve references.
func (r *MemoryRepository) Summary(id string) (*models.CameraSummary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return c.Summary(), true
}
