package services

import (
	"context"

	"github.com/agrodash/agroadmin/internal/common"
	"github.com/agrodash/agroadmin/internal/server/models"
)

type fakeProductAPI struct {
	products  map[string]models.Product
	sent      []models.ProductInput
	createErr error
	deleteErr error
}

func newFakeProductAPI() *fakeProductAPI {
	return &fakeProductAPI{products: map[string]models.Product{}}
}

func (f *fakeProductAPI) ListProducts(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductAPI) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (f *fakeProductAPI) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	f.sent = append(f.sent, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	p := models.Product{ID: "p1", Name: in.Name, Price: in.Price, Stock: in.Stock, SellerID: in.SellerID, ImageURL: in.ImageURL}
	f.products[p.ID] = p
	return &p, nil
}

func (f *fakeProductAPI) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	f.sent = append(f.sent, in)
	p, ok := f.products[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Name, p.Price, p.Stock, p.ImageURL = in.Name, in.Price, in.Stock, in.ImageURL
	f.products[id] = p
	return &p, nil
}

func (f *fakeProductAPI) DeleteProduct(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.products, id)
	return nil
}

type fakeMarketPriceAPI struct {
	rows    []models.MarketPrice
	filter  models.MarketPriceFilter
	created int
}

func (f *fakeMarketPriceAPI) ListMarketPrices(ctx context.Context, filter models.MarketPriceFilter) ([]models.MarketPrice, error) {
	f.filter = filter
	return f.rows, nil
}

func (f *fakeMarketPriceAPI) CreateMarketPrice(ctx context.Context, in models.MarketPriceInput) (*models.MarketPrice, error) {
	f.created++
	return &models.MarketPrice{ID: "m1", CropName: in.CropName, Price: in.Price}, nil
}

func (f *fakeMarketPriceAPI) UpdateMarketPrice(ctx context.Context, id string, in models.MarketPriceInput) (*models.MarketPrice, error) {
	return &models.MarketPrice{ID: id, CropName: in.CropName, Price: in.Price}, nil
}

func (f *fakeMarketPriceAPI) DeleteMarketPrice(ctx context.Context, id string) error { return nil }

type fakeUserAPI struct {
	calls []string
}

func (f *fakeUserAPI) ListUsers(ctx context.Context) ([]models.UserAccount, error) {
	f.calls = append(f.calls, "list")
	return nil, nil
}

func (f *fakeUserAPI) GetUser(ctx context.Context, id string) (*models.UserAccount, error) {
	f.calls = append(f.calls, "get")
	return &models.UserAccount{ID: id}, nil
}

func (f *fakeUserAPI) UpdateUserRole(ctx context.Context, id, role string) (*models.UserAccount, error) {
	f.calls = append(f.calls, "role:"+role)
	return &models.UserAccount{ID: id, Role: role}, nil
}

func (f *fakeUserAPI) SetUserActive(ctx context.Context, id string, active bool) (*models.UserAccount, error) {
	f.calls = append(f.calls, "active")
	return &models.UserAccount{ID: id, Active: active}, nil
}

func (f *fakeUserAPI) DeleteUser(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete")
	return nil
}

type fakeAuditAPI struct {
	filter models.AuditLogFilter
}

func (f *fakeAuditAPI) ListAuditLogs(ctx context.Context, filter models.AuditLogFilter) ([]models.AuditLog, error) {
	f.filter = filter
	return nil, nil
}
