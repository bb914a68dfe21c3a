package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agrodash/agroadmin/internal/logging"
	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/agrodash/agroadmin/internal/server/repositories/repomanager"
)

const defaultRecentActivity = 50

// ActivityService writes and reads the operator activity log.
type ActivityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewActivityService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *ActivityService {
	return &ActivityService{db: db, repomanager: m, log: log.With("module", "activity")}
}

// Record appends an entry for the caller in ctx. Failures are logged and
// never reach the caller. A nil service records nothing.
func (s *ActivityService) Record(ctx context.Context, action, entity, entityID, details string) {
	if s == nil {
		return
	}
	entry := &models.ActivityLog{
		ActorID:  actorID(ctx),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  details,
	}
	if err := s.repomanager.Activity(s.db).Create(ctx, entry); err != nil {
		s.log.Warn(ctx, "activity not recorded", "action", action, "entity", entity, "entity_id", entityID, "error", err)
	}
}

// Recent returns the newest entries first. limit <= 0 uses the default.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultRecentActivity
	}
	out, err := s.repomanager.Activity(s.db).Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing activity: %w", err)
	}
	return out, nil
}
