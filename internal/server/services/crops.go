package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agrodash/agroadmin/internal/server/attachments"
	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/agrodash/agroadmin/internal/server/repositories/repomanager"
)

// CropService manages catalogue crops and their images. The image is
// uploaded before the row is written; a failed write leaves the blob behind.
type CropService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validator   Validator
	images      *attachments.Manager
	activity    *ActivityService
}

func NewCropService(db *sql.DB, m repomanager.RepositoryManager, v Validator, images *attachments.Manager, a *ActivityService) *CropService {
	return &CropService{db: db, repomanager: m, validator: v, images: images, activity: a}
}

func (s *CropService) List(ctx context.Context, filter models.CropFilter) ([]models.Crop, error) {
	out, err := s.repomanager.Crops(s.db).List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing crops: %w", err)
	}
	return out, nil
}

func (s *CropService) Get(ctx context.Context, id string) (*models.Crop, error) {
	return s.repomanager.Crops(s.db).GetByID(ctx, id)
}

// Create stores a new crop. file may be nil.
func (s *CropService) Create(ctx context.Context, in models.CropInput, file *attachments.File) (*models.Crop, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	imageURL, err := s.images.Resolve(ctx, nil, file)
	if err != nil {
		return nil, err
	}

	crop := cropFromInput(in)
	crop.ImageURL = imageURL

	created, err := s.repomanager.Crops(s.db).Create(ctx, crop)
	if err != nil {
		return nil, fmt.Errorf("error creating crop: %w", err)
	}
	s.activity.Record(ctx, "create", "crop", created.ID, created.Name)
	return created, nil
}

// Update replaces the crop fields. Without a usable new image the current
// image reference is kept.
func (s *CropService) Update(ctx context.Context, id string, in models.CropInput, file *attachments.File) (*models.Crop, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	repo := s.repomanager.Crops(s.db)
	current, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.images.Resolve(ctx, current.ImageURL, file)
	if err != nil {
		return nil, err
	}

	crop := cropFromInput(in)
	crop.ID = id
	crop.ImageURL = imageURL

	updated, err := repo.Update(ctx, crop)
	if err != nil {
		return nil, fmt.Errorf("error updating crop: %w", err)
	}
	s.activity.Record(ctx, "update", "crop", id, updated.Name)
	return updated, nil
}

// Delete removes the crop row and then, best effort, its image.
func (s *CropService) Delete(ctx context.Context, id string) error {
	repo := s.repomanager.Crops(s.db)
	current, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting crop: %w", err)
	}
	s.images.Release(ctx, current.ImageURL)
	s.activity.Record(ctx, "delete", "crop", id, current.Name)
	return nil
}

func cropFromInput(in models.CropInput) *models.Crop {
	return &models.Crop{
		Name:        in.Name,
		CategoryID:  in.CategoryID,
		Variety:     in.Variety,
		Season:      in.Season,
		Description: in.Description,
		PricePerKg:  in.PricePerKg,
	}
}
