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

// RepositoryManager vends repositories bound to a database handle and owns
// schema migrations for its backend.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Cameras(db dbx.DBTX) cameras.Repository
	Recordings(db dbx.DBTX) recordings.Repository
	Alerts(db dbx.DBTX) alerts.Repository
}
