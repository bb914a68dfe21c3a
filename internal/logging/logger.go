// Package logging defines the structured-logging interface used across
// agroadmin and its slog and zap implementations.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "crop created", "id", crop.ID, "image", crop.ImageURL != nil)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn is used for expected, recoverable conditions such as a missing
	// session before an upload.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported backends.
const (
	BackendSlogJSON = "slog-json"
	BackendSlogText = "slog-text"
	BackendZap      = "zap"
)

// New builds a Logger for the named backend writing to w.
func New(backend string, w io.Writer) (Logger, error) {
	switch backend {
	case "", BackendSlogJSON:
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil))), nil
	case BackendSlogText:
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, nil))), nil
	case BackendZap:
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(w),
			zap.InfoLevel,
		)
		return NewZapLogger(zap.New(core)), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
