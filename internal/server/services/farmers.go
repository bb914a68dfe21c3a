package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/agrodash/agroadmin/internal/server/repositories/repomanager"
)

type FarmerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validator   Validator
	activity    *ActivityService
}

func NewFarmerService(db *sql.DB, m repomanager.RepositoryManager, v Validator, a *ActivityService) *FarmerService {
	return &FarmerService{db: db, repomanager: m, validator: v, activity: a}
}

func (s *FarmerService) List(ctx context.Context, filter models.FarmerFilter) ([]models.Farmer, error) {
	out, err := s.repomanager.Farmers(s.db).List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing farmers: %w", err)
	}
	return out, nil
}

func (s *FarmerService) Get(ctx context.Context, id string) (*models.Farmer, error) {
	return s.repomanager.Farmers(s.db).GetByID(ctx, id)
}

func (s *FarmerService) Create(ctx context.Context, in models.FarmerInput) (*models.Farmer, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	f, err := s.repomanager.Farmers(s.db).Create(ctx, &models.Farmer{
		FullName:   in.FullName,
		Phone:      in.Phone,
		Region:     in.Region,
		FarmSizeHa: in.FarmSizeHa,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating farmer: %w", err)
	}
	s.activity.Record(ctx, "create", "farmer", f.ID, f.FullName)
	return f, nil
}

func (s *FarmerService) Update(ctx context.Context, id string, in models.FarmerInput) (*models.Farmer, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	f, err := s.repomanager.Farmers(s.db).Update(ctx, &models.Farmer{
		ID:         id,
		FullName:   in.FullName,
		Phone:      in.Phone,
		Region:     in.Region,
		FarmSizeHa: in.FarmSizeHa,
	})
	if err != nil {
		return nil, fmt.Errorf("error updating farmer: %w", err)
	}
	s.activity.Record(ctx, "update", "farmer", id, f.FullName)
	return f, nil
}

// Verify flips the verified flag of the farmer and returns the new state.
func (s *FarmerService) Verify(ctx context.Context, id string) (*models.Farmer, error) {
	repo := s.repomanager.Farmers(s.db)
	f, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := repo.SetVerified(ctx, id, !f.Verified); err != nil {
		return nil, fmt.Errorf("error verifying farmer: %w", err)
	}
	f.Verified = !f.Verified

	action := "verify"
	if !f.Verified {
		action = "unverify"
	}
	s.activity.Record(ctx, action, "farmer", id, f.FullName)
	return f, nil
}

func (s *FarmerService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Farmers(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting farmer: %w", err)
	}
	s.activity.Record(ctx, "delete", "farmer", id, "")
	return nil
}
