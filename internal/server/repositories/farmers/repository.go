// Package farmers stores registered farmers.
package farmers

import (
	"context"

	"github.com/agrodash/agroadmin/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, filter models.FarmerFilter) ([]models.Farmer, error)
	GetByID(ctx context.Context, id string) (*models.Farmer, error)
	Create(ctx context.Context, f *models.Farmer) (*models.Farmer, error)
	Update(ctx context.Context, f *models.Farmer) (*models.Farmer, error)
	SetVerified(ctx context.Context, id string, verified bool) error
	Delete(ctx context.Context, id string) error
}
