package repomanager

import (
	"context"
	"database/sql"

	"github.com/agrodash/agroadmin/internal/dbx"
	"github.com/agrodash/agroadmin/internal/server/repositories/activity"
	"github.com/agrodash/agroadmin/internal/server/repositories/addresses"
	"github.com/agrodash/agroadmin/internal/server/repositories/categories"
	"github.com/agrodash/agroadmin/internal/server/repositories/crops"
	"github.com/agrodash/agroadmin/internal/server/repositories/farmers"
	"github.com/agrodash/agroadmin/internal/server/repositories/feed"
	"github.com/agrodash/agroadmin/internal/server/repositories/orders"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// service code runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Categories(db dbx.DBTX) categories.Repository
	Crops(db dbx.DBTX) crops.Repository
	Farmers(db dbx.DBTX) farmers.Repository
	Addresses(db dbx.DBTX) addresses.Repository
	Orders(db dbx.DBTX) orders.Repository
	Feed(db dbx.DBTX) feed.Repository
	Activity(db dbx.DBTX) activity.Repository
}
