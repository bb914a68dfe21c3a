// Package grpc serves the standard gRPC health service of agroadmin. The
// serving status follows the database ping.
package grpc

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/agrodash/agroadmin/internal/logging"
	"github.com/agrodash/agroadmin/internal/server/auth"
	"github.com/agrodash/agroadmin/internal/server/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const defaultProbeInterval = 15 * time.Second

// ServiceName is the health service name reported next to the overall status.
const ServiceName = "agroadmin.Admin"

type GRPCServer struct {
	address       string
	logger        logging.Logger
	metrics       *metrics.Metrics
	verifier      *auth.Verifier
	health        *health.Server
	ping          func(ctx context.Context) error
	probeInterval time.Duration
}

// NewGRPCServer builds the server. ping may be nil, in which case the
// service always reports SERVING.
func NewGRPCServer(address string, l logging.Logger, m *metrics.Metrics, v *auth.Verifier, ping func(ctx context.Context) error) *GRPCServer {
	return &GRPCServer{
		address:       address,
		logger:        l.With("module", "grpc_server"),
		metrics:       m,
		verifier:      v,
		health:        health.NewServer(),
		ping:          ping,
		probeInterval: defaultProbeInterval,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.metricsInterceptor,
		s.loggingInterceptor,
		s.accessTokenInterceptor,
	))
	healthpb.RegisterHealthServer(srv, s.health)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	s.probe(ctx)
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.probeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info(ctx, "Stopping gRPC server...")
				s.health.Shutdown()
				srv.GracefulStop()
				return
			case <-done:
				return
			case <-ticker.C:
				s.probe(ctx)
			}
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())
	err := srv.Serve(lis)
	close(done)
	wg.Wait()
	return err
}

func (s *GRPCServer) probe(ctx context.Context) {
	st := healthpb.HealthCheckResponse_SERVING
	if s.ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := s.ping(pingCtx)
		cancel()
		if err != nil && ctx.Err() == nil {
			s.logger.Warn(ctx, "database ping failed", "error", err)
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}
