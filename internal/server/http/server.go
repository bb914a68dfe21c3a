// Package http exposes the admin services as a JSON API served by echo.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/agrodash/agroadmin/internal/logging"
	"github.com/agrodash/agroadmin/internal/server/auth"
	"github.com/agrodash/agroadmin/internal/server/metrics"
	"github.com/agrodash/agroadmin/internal/server/services"
	"github.com/agrodash/agroadmin/internal/settings"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// Services are the backends of the HTTP handlers.
type Services struct {
	Categories   *services.CategoryService
	Crops        *services.CropService
	Farmers      *services.FarmerService
	Addresses    *services.AddressService
	Orders       *services.OrderService
	Feed         *services.FeedService
	Activity     *services.ActivityService
	MarketPrices *services.MarketPriceService
	Products     *services.ProductService
	AgriServices *services.AgriServiceService
	AuditLogs    *services.AuditLogService
	Users        *services.UserManagementService
	Settings     *settings.Store
}

type Options struct {
	Address       string
	MaxUploadSize int64
	Verifier      *auth.Verifier
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer
	// Ping reports database health for /healthz. May be nil.
	Ping func(ctx context.Context) error
}

type Server struct {
	address string
	echo    *echo.Echo
	logger  logging.Logger
	svc     Services
	opts    Options
}

func NewServer(l logging.Logger, svc Services, opts Options) *Server {
	s := &Server{
		address: opts.Address,
		echo:    echo.New(),
		logger:  l.With("module", "http_server"),
		svc:     svc,
		opts:    opts,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.errorHandler

	s.echo.Use(middleware.Recover())
	s.echo.Use(s.requestLogger)
	s.echo.Use(s.metrics)
	if opts.MaxUploadSize > 0 {
		s.echo.Use(middleware.BodyLimit(fmt.Sprintf("%dB", opts.MaxUploadSize)))
	}

	s.routes()
	return s
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) routes() {
	e := s.echo
	e.GET("/healthz", s.health)
	if s.opts.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := e.Group("/api", s.session)

	api.GET("/categories", s.listCategories)
	api.POST("/categories", s.createCategory)
	api.GET("/categories/:id", s.getCategory)
	api.PUT("/categories/:id", s.updateCategory)
	api.DELETE("/categories/:id", s.deleteCategory)

	api.GET("/crops", s.listCrops)
	api.POST("/crops", s.createCrop)
	api.GET("/crops/:id", s.getCrop)
	api.PUT("/crops/:id", s.updateCrop)
	api.DELETE("/crops/:id", s.deleteCrop)

	api.GET("/farmers", s.listFarmers)
	api.POST("/farmers", s.createFarmer)
	api.GET("/farmers/:id", s.getFarmer)
	api.PUT("/farmers/:id", s.updateFarmer)
	api.DELETE("/farmers/:id", s.deleteFarmer)
	api.POST("/farmers/:id/verify", s.verifyFarmer)

	api.POST("/addresses", s.createAddress)
	api.GET("/addresses/:id", s.getAddress)
	api.PATCH("/addresses/:id", s.updateAddress)
	api.DELETE("/addresses/:id", s.deleteAddress)
	api.POST("/addresses/:id/default", s.setDefaultAddress)
	api.GET("/users/:id/addresses", s.listUserAddresses)
	api.GET("/users/:id/addresses/default", s.getDefaultAddress)

	api.GET("/orders", s.listOrders)
	api.GET("/orders/stats", s.orderStats)
	api.GET("/orders/:id", s.getOrder)
	api.PATCH("/orders/:id/status", s.updateOrderStatus)
	api.DELETE("/orders/:id", s.deleteOrder)

	api.GET("/feed", s.listFeed)
	api.POST("/feed", s.createPost)
	api.DELETE("/feed/:id", s.deletePost)

	api.GET("/activity", s.recentActivity)

	api.GET("/market-prices", s.listMarketPrices)
	api.GET("/market-prices/stats", s.marketPriceStats)
	api.POST("/market-prices", s.createMarketPrice)
	api.PUT("/market-prices/:id", s.updateMarketPrice)
	api.DELETE("/market-prices/:id", s.deleteMarketPrice)

	api.GET("/products", s.listProducts)
	api.POST("/products", s.createProduct)
	api.GET("/products/:id", s.getProduct)
	api.PUT("/products/:id", s.updateProduct)
	api.DELETE("/products/:id", s.deleteProduct)

	api.GET("/agri-services", s.listAgriServices)
	api.POST("/agri-services", s.createAgriService)
	api.PUT("/agri-services/:id", s.updateAgriService)
	api.DELETE("/agri-services/:id", s.deleteAgriService)

	api.GET("/audit-logs", s.listAuditLogs)

	api.GET("/users", s.listUsers)
	api.GET("/users/:id", s.getUser)
	api.PATCH("/users/:id/role", s.updateUserRole)
	api.PATCH("/users/:id/active", s.setUserActive)
	api.DELETE("/users/:id", s.deleteUser)

	api.GET("/settings", s.getSettings)
	api.PATCH("/settings", s.updateSettings)
}

func (s *Server) health(c echo.Context) error {
	if s.opts.Ping != nil {
		if err := s.opts.Ping(c.Request().Context()); err != nil {
			s.logger.Warn(c.Request().Context(), "health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.echo, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return <-errCh
}
