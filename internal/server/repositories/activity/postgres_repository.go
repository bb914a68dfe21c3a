package activity

import (
	"context"
	"fmt"

	"github.com/agrodash/agroadmin/internal/dbx"
	"github.com/agrodash/agroadmin/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, l *models.ActivityLog) error {
	query :=
		`INSERT INTO activity_logs (actor_id, action, entity, entity_id, details)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, l.ActorID, l.Action, l.Entity, l.EntityID, l.Details).
		Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	query :=
		`SELECT id, actor_id, action, entity, entity_id, details, created_at FROM activity_logs
		 ORDER BY created_at DESC
		 LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.ActivityLog{}
	for rows.Next() {
		var l models.ActivityLog
		if err := rows.Scan(&l.ID, &l.ActorID, &l.Action, &l.Entity, &l.EntityID, &l.Details, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}
