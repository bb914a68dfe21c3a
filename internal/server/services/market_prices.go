package services

import (
	"context"

	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/agrodash/agroadmin/internal/server/pricestats"
)

// MarketPriceAPI is the REST backend of market prices.
type MarketPriceAPI interface {
	ListMarketPrices(ctx context.Context, f models.MarketPriceFilter) ([]models.MarketPrice, error)
	CreateMarketPrice(ctx context.Context, in models.MarketPriceInput) (*models.MarketPrice, error)
	UpdateMarketPrice(ctx context.Context, id string, in models.MarketPriceInput) (*models.MarketPrice, error)
	DeleteMarketPrice(ctx context.Context, id string) error
}

// PriceStats is the aggregate view over a filtered set of prices.
type PriceStats struct {
	Overall pricestats.Summary            `json:"overall"`
	ByCrop  map[string]pricestats.Summary `json:"by_crop"`
}

type MarketPriceService struct {
	api       MarketPriceAPI
	validator Validator
}

func NewMarketPriceService(api MarketPriceAPI, v Validator) *MarketPriceService {
	return &MarketPriceService{api: api, validator: v}
}

func (s *MarketPriceService) List(ctx context.Context, f models.MarketPriceFilter) ([]models.MarketPrice, error) {
	return s.api.ListMarketPrices(ctx, f)
}

func (s *MarketPriceService) Create(ctx context.Context, in models.MarketPriceInput) (*models.MarketPrice, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	return s.api.CreateMarketPrice(ctx, in)
}

func (s *MarketPriceService) Update(ctx context.Context, id string, in models.MarketPriceInput) (*models.MarketPrice, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	return s.api.UpdateMarketPrice(ctx, id, in)
}

func (s *MarketPriceService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteMarketPrice(ctx, id)
}

// Stats lists the prices matching f and summarizes them.
func (s *MarketPriceService) Stats(ctx context.Context, f models.MarketPriceFilter) (*PriceStats, error) {
	rows, err := s.api.ListMarketPrices(ctx, f)
	if err != nil {
		return nil, err
	}
	return &PriceStats{
		Overall: pricestats.Compute(rows),
		ByCrop:  pricestats.ComputeByCrop(rows),
	}, nil
}
