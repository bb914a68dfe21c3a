package services

import (
	"context"

	"github.com/agrodash/agroadmin/internal/server/attachments"
	"github.com/agrodash/agroadmin/internal/server/models"
)

// ProductAPI is the REST backend of marketplace products.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductService manages products and their images, which live in the
// product bucket and are referenced by public URL.
type ProductService struct {
	api       ProductAPI
	validator Validator
	images    *attachments.Manager
}

func NewProductService(api ProductAPI, v Validator, images *attachments.Manager) *ProductService {
	return &ProductService{api: api, validator: v, images: images}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.api.ListProducts(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.api.GetProduct(ctx, id)
}

// Create uploads file (if any) and then creates the product.
func (s *ProductService) Create(ctx context.Context, in models.ProductInput, file *attachments.File) (*models.Product, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	ref, err := s.images.Resolve(ctx, nil, file)
	if err != nil {
		return nil, err
	}
	in.ImageURL = ref
	return s.api.CreateProduct(ctx, in)
}

// Update uploads file (if any) and then updates the product, keeping the
// current image when no new one could be stored.
func (s *ProductService) Update(ctx context.Context, id string, in models.ProductInput, file *attachments.File) (*models.Product, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	current, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	ref, err := s.images.Resolve(ctx, current.ImageURL, file)
	if err != nil {
		return nil, err
	}
	in.ImageURL = ref
	return s.api.UpdateProduct(ctx, id, in)
}

// Delete removes the product and then, best effort, its image.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	current, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.images.Release(ctx, current.ImageURL)
	return nil
}
