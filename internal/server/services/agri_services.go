package services

import (
	"context"

	"github.com/agrodash/agroadmin/internal/server/models"
)

// AgriServiceAPI is the REST backend of agricultural service listings.
type AgriServiceAPI interface {
	ListAgriServices(ctx context.Context) ([]models.AgriService, error)
	CreateAgriService(ctx context.Context, in models.AgriServiceInput) (*models.AgriService, error)
	UpdateAgriService(ctx context.Context, id string, in models.AgriServiceInput) (*models.AgriService, error)
	DeleteAgriService(ctx context.Context, id string) error
}

type AgriServiceService struct {
	api       AgriServiceAPI
	validator Validator
}

func NewAgriServiceService(api AgriServiceAPI, v Validator) *AgriServiceService {
	return &AgriServiceService{api: api, validator: v}
}

func (s *AgriServiceService) List(ctx context.Context) ([]models.AgriService, error) {
	return s.api.ListAgriServices(ctx)
}

func (s *AgriServiceService) Create(ctx context.Context, in models.AgriServiceInput) (*models.AgriService, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	return s.api.CreateAgriService(ctx, in)
}

func (s *AgriServiceService) Update(ctx context.Context, id string, in models.AgriServiceInput) (*models.AgriService, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	return s.api.UpdateAgriService(ctx, id, in)
}

func (s *AgriServiceService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteAgriService(ctx, id)
}
