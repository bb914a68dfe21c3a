package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/agrodash/agroadmin/internal/common"
	"github.com/agrodash/agroadmin/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const authorizationMetadataKey = "authorization"

// accessTokenInterceptor attaches the bearer session to the context. Calls
// without a token are anonymous; calls with an invalid token are rejected.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(authorizationMetadataKey); len(values) > 0 {
			header = values[0]
		}
	}
	if header == "" || s.verifier == nil {
		return handler(ctx, req)
	}

	token, ok := auth.BearerToken(header)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "malformed authorization")
	}
	sess, err := s.verifier.Verify(token)
	if err != nil {
		return nil, toStatus(err)
	}
	return handler(auth.WithSession(ctx, sess), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		err = toStatus(err)
		s.logger.Debug(ctx, "rpc failed", "method", info.FullMethod, "code", status.Code(err).String(), "error", err)
	}
	return resp, err
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.metrics.ObserveGRPC(info.FullMethod, status.Code(err).String(), time.Since(start).Seconds())
	return resp, err
}

// toStatus converts service errors into gRPC status errors. Errors that
// already carry a status are returned as is.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, "token expired")
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrConflict), errors.Is(err, common.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
