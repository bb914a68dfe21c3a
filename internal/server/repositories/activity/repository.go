// Package activity stores the operator activity log.
package activity

import (
	"context"

	"github.com/agrodash/agroadmin/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, l *models.ActivityLog) error
	Recent(ctx context.Context, limit int) ([]models.ActivityLog, error)
}
