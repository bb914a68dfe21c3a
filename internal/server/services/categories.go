package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/agrodash/agroadmin/internal/server/repositories/repomanager"
)

type CategoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validator   Validator
	activity    *ActivityService
}

func NewCategoryService(db *sql.DB, m repomanager.RepositoryManager, v Validator, a *ActivityService) *CategoryService {
	return &CategoryService{db: db, repomanager: m, validator: v, activity: a}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	out, err := s.repomanager.Categories(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	return out, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.repomanager.Categories(s.db).GetByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	c, err := s.repomanager.Categories(s.db).Create(ctx, &models.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating category: %w", err)
	}
	s.activity.Record(ctx, "create", "category", c.ID, c.Name)
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	c, err := s.repomanager.Categories(s.db).Update(ctx, &models.Category{
		ID:          id,
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("error updating category: %w", err)
	}
	s.activity.Record(ctx, "update", "category", id, c.Name)
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Categories(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}
	s.activity.Record(ctx, "delete", "category", id, "")
	return nil
}
