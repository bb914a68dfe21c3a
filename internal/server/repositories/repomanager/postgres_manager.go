// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agrodash/agroadmin/internal/dbx"
	"github.com/agrodash/agroadmin/internal/server/migrations"
	"github.com/agrodash/agroadmin/internal/server/repositories/activity"
	"github.com/agrodash/agroadmin/internal/server/repositories/addresses"
	"github.com/agrodash/agroadmin/internal/server/repositories/categories"
	"github.com/agrodash/agroadmin/internal/server/repositories/crops"
	"github.com/agrodash/agroadmin/internal/server/repositories/farmers"
	"github.com/agrodash/agroadmin/internal/server/repositories/feed"
	"github.com/agrodash/agroadmin/internal/server/repositories/orders"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Categories(db dbx.DBTX) categories.Repository {
	return categories.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Crops(db dbx.DBTX) crops.Repository {
	return crops.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Farmers(db dbx.DBTX) farmers.Repository {
	return farmers.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Addresses(db dbx.DBTX) addresses.Repository {
	return addresses.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Orders(db dbx.DBTX) orders.Repository {
	return orders.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Feed(db dbx.DBTX) feed.Repository {
	return feed.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Activity(db dbx.DBTX) activity.Repository {
	return activity.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// gooseStatusContext is a seam for testing goose.StatusContext.
var gooseStatusContext = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.StatusContext(ctx, db, dir)
}

func setupGoose() error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.SetDialect("pgx")
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return fmt.Errorf("goose setup: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// MigrationStatus prints the applied/pending state of every migration
// through the goose logger.
func (m *PostgresRepositoryManager) MigrationStatus(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return fmt.Errorf("goose setup: %w", err)
	}
	if err := gooseStatusContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate status: %w", err)
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed manager.
func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}
