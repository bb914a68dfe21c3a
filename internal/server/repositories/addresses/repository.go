// Package addresses stores user addresses. The schema allows at most one
// default address per user.
package addresses

import (
	"context"

	"github.com/agrodash/agroadmin/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
	GetByID(ctx context.Context, id string) (*models.Address, error)
	// GetDefault returns common.ErrorNotFound when the user has no default.
	GetDefault(ctx context.Context, userID string) (*models.Address, error)
	HasAny(ctx context.Context, userID string) (bool, error)
	// MostRecent returns the newest address of the user, or common.ErrorNotFound.
	MostRecent(ctx context.Context, userID string) (*models.Address, error)
	Create(ctx context.Context, a *models.Address) (*models.Address, error)
	Update(ctx context.Context, a *models.Address) (*models.Address, error)
	// ClearDefault unsets is_default on every address of the user. Touching
	// zero rows is not an error.
	ClearDefault(ctx context.Context, userID string) error
	SetDefault(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
