package repomanager

import (
	"context"
	"database/sql"

	"github.com/guardianeye/guardianeye/internal/dbx"
	"github.com/guardianeye/guardianeye/internal/server/repositories/alerts"
	"github.com/guardianeye/guardianeye/internal/server/repositories/cameras"
	"github.com/guardianeye/guardianeye/internal/server/repositories/recordings"
	"github.com/guardianeye/guardianeye/internal/server/repositories/users"
)

// MemoryRepositoryManager serves one shared set of in-process repositories.
// The db argument of every factory is ignored and may be nil.
type MemoryRepositoryManager struct {
	users      *users.MemoryRepository
	cameras    *cameras.MemoryRepository
	recordings *recordings.MemoryRepository
	alerts     *alerts.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	cams := cameras.NewMemoryRepository()
	return &MemoryRepositoryManager{
		users:      users.NewMemoryRepository(),
		cameras:    cams,
		recordings: recordings.NewMemoryRepository(cams),
		alerts:     alerts.NewMemoryRepository(cams),
	}
}

// RunMigrations is a no-op; the in-process store has no schema.
func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Cameras(dbx.DBTX) cameras.Repository { return m.cameras }

func (m *MemoryRepositoryManager) Recordings(dbx.DBTX) recordings.Repository { return m.recordings }

func (m *MemoryRepositoryManager) Alerts(dbx.DBTX) alerts.Repository { return m.alerts }
