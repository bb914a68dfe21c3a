// Package services contains the server-side business logic of the admin
// backend. Each service maps its operations onto one table repository or
// onto the external REST API and validates input before any I/O.
package services

import (
	"context"

	"github.com/agrodash/agroadmin/internal/server/auth"
)

// Validator checks declarative constraints of an input struct.
type Validator interface {
	Validate(v any) error
}

// actorID returns the user id of the session in ctx, or "" for anonymous
// callers.
func actorID(ctx context.Context) string {
	s, ok := auth.SessionFromContext(ctx)
	if !ok {
		return ""
	}
	return s.UserID
}
