// Package crops stores catalogue crops.
package crops

import (
	"context"

	"github.com/agrodash/agroadmin/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, filter models.CropFilter) ([]models.Crop, error)
	GetByID(ctx context.Context, id string) (*models.Crop, error)
	Create(ctx context.Context, c *models.Crop) (*models.Crop, error)
	Update(ctx context.Context, c *models.Crop) (*models.Crop, error)
	Delete(ctx context.Context, id string) error
}
