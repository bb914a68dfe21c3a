package services

import (
	"context"

	"github.com/agrodash/agroadmin/internal/server/models"
)

const maxAuditLogLimit = 500

type AuditLogAPI interface {
	ListAuditLogs(ctx context.Context, f models.AuditLogFilter) ([]models.AuditLog, error)
}

// AuditLogService is a read-only view of the platform audit trail.
type AuditLogService struct {
	api AuditLogAPI
}

func NewAuditLogService(api AuditLogAPI) *AuditLogService {
	return &AuditLogService{api: api}
}

func (s *AuditLogService) List(ctx context.Context, f models.AuditLogFilter) ([]models.AuditLog, error) {
	if f.Limit > maxAuditLogLimit {
		f.Limit = maxAuditLogLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.api.ListAuditLogs(ctx, f)
}
