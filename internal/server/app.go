// Package server wires the agroadmin backend together: database, object
// storage, the external REST client, services and the HTTP and gRPC servers.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrodash/agroadmin/internal/logging"
	"github.com/agrodash/agroadmin/internal/server/attachments"
	"github.com/agrodash/agroadmin/internal/server/auth"
	"github.com/agrodash/agroadmin/internal/server/config"
	"github.com/agrodash/agroadmin/internal/server/metrics"
	"github.com/agrodash/agroadmin/internal/server/repositories/repomanager"
	"github.com/agrodash/agroadmin/internal/server/restapi"
	"github.com/agrodash/agroadmin/internal/server/services"
	"github.com/agrodash/agroadmin/internal/server/storage"
	"github.com/agrodash/agroadmin/internal/server/validation"
	"github.com/agrodash/agroadmin/internal/settings"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	gs "github.com/agrodash/agroadmin/internal/server/grpc"
	hs "github.com/agrodash/agroadmin/internal/server/http"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const dbStatsInterval = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	metrics *metrics.Metrics
	http    *hs.Server
	grpc    *gs.GRPCServer
}

// NewApp opens the database, applies migrations and builds every component.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, err := logging.New(cfg.LogBackend, os.Stdout)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return newApp(cfg, logger, db, rm, store), nil
}

func newStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "memory":
		logger.Warn(ctx, "using in-memory object storage, uploads are lost on restart")
		return attachments.NewMemStore(cfg.S3PublicBaseURL), nil
	case "s3", "":
		s, err := storage.NewS3Store(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("storage init error: %w", err)
		}
		for _, bucket := range []string{cfg.S3CropBucket, cfg.S3ProductBucket} {
			if err := s.CheckBucket(ctx, bucket); err != nil {
				logger.Warn(ctx, "bucket not reachable", "bucket", bucket, "kind", storage.KindOf(err).String(), "error", err)
			}
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func newApp(cfg *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager, store storage.Store) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	v := validation.New()
	api := restapi.New(cfg.APIBaseURL, cfg.APITimeout)
	cropImages := attachments.NewManager(store, cfg.S3CropBucket, logger, m)
	productImages := attachments.NewManager(store, cfg.S3ProductBucket, logger, m)

	activity := services.NewActivityService(db, rm, logger)
	svc := hs.Services{
		Categories:   services.NewCategoryService(db, rm, v, activity),
		Crops:        services.NewCropService(db, rm, v, cropImages, activity),
		Farmers:      services.NewFarmerService(db, rm, v, activity),
		Addresses:    services.NewAddressService(db, rm, v, activity),
		Orders:       services.NewOrderService(db, rm, v, activity),
		Feed:         services.NewFeedService(db, rm, v),
		Activity:     activity,
		MarketPrices: services.NewMarketPriceService(api, v),
		Products:     services.NewProductService(api, v, productImages),
		AgriServices: services.NewAgriServiceService(api, v),
		AuditLogs:    services.NewAuditLogService(api),
		Users:        services.NewUserManagementService(api, v),
		Settings:     settings.NewStore(cfg.SettingsPath, logger),
	}

	verifier := auth.NewVerifier([]byte(cfg.SecretKey))

	httpServer := hs.NewServer(logger, svc, hs.Options{
		Address:       cfg.EndpointAddrHTTP,
		MaxUploadSize: cfg.MaxUploadSize,
		Verifier:      verifier,
		Metrics:       m,
		Gatherer:      reg,
		Ping:          db.PingContext,
	})
	grpcServer := gs.NewGRPCServer(cfg.EndpointAddrGRPC, logger, m, verifier, db.PingContext)

	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: m,
		http:    httpServer,
		grpc:    grpcServer,
	}
}

// Run serves until SIGINT/SIGTERM, ctx cancellation or the first server
// failure, then stops everything gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.http.Run(ctx) })
	g.Go(func() error { return app.grpc.Run(ctx) })
	g.Go(func() error {
		app.recordDBStats(ctx)
		return nil
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		app.logger.Error(ctx, "app stopped", "error", err)
		return err
	}
	app.logger.Info(ctx, "App stopped")
	return nil
}

func (app *App) recordDBStats(ctx context.Context) {
	ticker := time.NewTicker(dbStatsInterval)
	defer ticker.Stop()
	for {
		app.metrics.RecordDBStats(app.db.Stats())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Close releases the database pool.
func (app *App) Close() error {
	return app.db.Close()
}
