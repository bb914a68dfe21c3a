// Package restapi is the client of the external marketplace REST API that
// serves market prices, products, agri-services, audit logs and user
// accounts. Every call carries the bearer token of the session found in the
// request context, when there is one.
package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agrodash/agroadmin/internal/common"
	"github.com/agrodash/agroadmin/internal/netx"
	"github.com/agrodash/agroadmin/internal/server/auth"
	"github.com/agrodash/agroadmin/internal/server/models"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient replaces the underlying http.Client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	h := http.Header{}
	if s, ok := auth.SessionFromContext(ctx); ok && s.AccessToken != "" {
		h.Set(common.AuthorizationHeaderName, common.BearerPrefix+s.AccessToken)
	}

	err := netx.DoJSON(ctx, c.http, method, u, h, in, out)
	if se, ok := err.(*netx.StatusError); ok && se.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", common.ErrorNotFound, se.Error())
	}
	return err
}

func setIf(q url.Values, k, v string) {
	if v != "" {
		q.Set(k, v)
	}
}

// Market prices.

func (c *Client) ListMarketPrices(ctx context.Context, f models.MarketPriceFilter) ([]models.MarketPrice, error) {
	q := url.Values{}
	setIf(q, "crop", f.Crop)
	setIf(q, "market", f.Market)
	setIf(q, "region", f.Region)
	if f.From != nil {
		q.Set("from", f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		q.Set("to", f.To.UTC().Format(time.RFC3339))
	}
	var out []models.MarketPrice
	if err := c.do(ctx, http.MethodGet, "/market-prices", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateMarketPrice(ctx context.Context, in models.MarketPriceInput) (*models.MarketPrice, error) {
	var out models.MarketPrice
	if err := c.do(ctx, http.MethodPost, "/market-prices", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMarketPrice(ctx context.Context, id string, in models.MarketPriceInput) (*models.MarketPrice, error) {
	var out models.MarketPrice
	if err := c.do(ctx, http.MethodPut, "/market-prices/"+url.PathEscape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMarketPrice(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/market-prices/"+url.PathEscape(id), nil, nil, nil)
}

// Products.

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil, nil)
}

// Agri-services.

func (c *Client) ListAgriServices(ctx context.Context) ([]models.AgriService, error) {
	var out []models.AgriService
	if err := c.do(ctx, http.MethodGet, "/agri-services", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAgriService(ctx context.Context, in models.AgriServiceInput) (*models.AgriService, error) {
	var out models.AgriService
	if err := c.do(ctx, http.MethodPost, "/agri-services", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAgriService(ctx context.Context, id string, in models.AgriServiceInput) (*models.AgriService, error) {
	var out models.AgriService
	if err := c.do(ctx, http.MethodPut, "/agri-services/"+url.PathEscape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAgriService(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/agri-services/"+url.PathEscape(id), nil, nil, nil)
}

// Audit logs are read-only.

func (c *Client) ListAuditLogs(ctx context.Context, f models.AuditLogFilter) ([]models.AuditLog, error) {
	q := url.Values{}
	setIf(q, "actor_id", f.ActorID)
	setIf(q, "action", f.Action)
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	var out []models.AuditLog
	if err := c.do(ctx, http.MethodGet, "/audit-logs", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Users.

func (c *Client) ListUsers(ctx context.Context) ([]models.UserAccount, error) {
	var out []models.UserAccount
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.UserAccount, error) {
	var out models.UserAccount
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUserRole(ctx context.Context, id, role string) (*models.UserAccount, error) {
	var out models.UserAccount
	body := map[string]string{"role": role}
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetUserActive(ctx context.Context, id string, active bool) (*models.UserAccount, error) {
	var out models.UserAccount
	body := map[string]bool{"active": active}
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil)
}
