// Package feed stores posts of the marketplace news feed.
package feed

import (
	"context"

	"github.com/agrodash/agroadmin/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, limit, offset int) ([]models.FeedPost, error)
	Create(ctx context.Context, p *models.FeedPost) (*models.FeedPost, error)
	Delete(ctx context.Context, id string) error
}
