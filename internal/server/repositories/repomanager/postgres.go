// Package repomanager provides RepositoryManager implementations for
// PostgreSQL (with goose migrations) and for an in-process store.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/guardianeye/guardianeye/internal/dbx"
	"github.com/guardianeye/guardianeye/internal/server/migrations"
	"github.com/guardianeye/guardianeye/internal/server/repositories/alerts"
	"github.com/guardianeye/guardianeye/internal/server/repositories/cameras"
	"github.com/guardianeye/guardianeye/internal/server/repositories/recordings"
	"github.com/guardianeye/guardianeye/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Cameras returns a cameras.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Cameras(db dbx.DBTX) cameras.Repository {
	return cameras.NewPostgresRepository(db)
}

// Recordings returns a recordings.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Recordings(db dbx.DBTX) recordings.Repository {
	return recordings.NewPostgresRepository(db)
}

// Alerts returns an alerts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Alerts(db dbx.DBTX) alerts.Repository {
	return alerts.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
