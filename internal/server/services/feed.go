package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agrodash/agroadmin/internal/common"
	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/agrodash/agroadmin/internal/server/repositories/repomanager"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

type FeedService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validator   Validator
}

func NewFeedService(db *sql.DB, m repomanager.RepositoryManager, v Validator) *FeedService {
	return &FeedService{db: db, repomanager: m, validator: v}
}

// List returns a page of posts, newest first. limit is clamped to (0, 100].
func (s *FeedService) List(ctx context.Context, limit, offset int) ([]models.FeedPost, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	if offset < 0 {
		offset = 0
	}
	out, err := s.repomanager.Feed(s.db).List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing feed: %w", err)
	}
	return out, nil
}

// Create publishes a post authored by the caller.
func (s *FeedService) Create(ctx context.Context, in models.FeedPostInput) (*models.FeedPost, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	author := actorID(ctx)
	if author == "" {
		return nil, common.ErrorUnauthorized
	}
	p, err := s.repomanager.Feed(s.db).Create(ctx, &models.FeedPost{
		AuthorID: author,
		Title:    in.Title,
		Body:     in.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return p, nil
}

func (s *FeedService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Feed(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	return nil
}
