package logging

import "context"

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying the request id. Both
// backends add it to every entry logged with that context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

func withContextArgs(ctx context.Context, args []any) []any {
	if id, ok := RequestID(ctx); ok {
		return append(args, "request_id", id)
	}
	return args
}
