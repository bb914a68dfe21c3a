// Package orders stores marketplace orders.
package orders

import (
	"context"

	"github.com/agrodash/agroadmin/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// UpdateStatus moves the order to status only if it is still in from.
	UpdateStatus(ctx context.Context, id, from, to string) (*models.Order, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int, error)
}
