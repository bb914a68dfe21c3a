// Package categories stores crop categories.
package categories

import (
	"context"

	"github.com/agrodash/agroadmin/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}
