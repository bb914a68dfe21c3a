package addresses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agrodash/agroadmin/internal/common"
	"github.com/agrodash/agroadmin/internal/dbx"
	"github.com/agrodash/agroadmin/internal/server/models"
)

const selectColumns = `SELECT id, user_id, label, line1, line2, city, region, postal_code, phone, is_default, created_at, updated_at FROM addresses`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanAddress(s interface{ Scan(...any) error }) (*models.Address, error) {
	a := &models.Address{}
	err := s.Scan(&a.ID, &a.UserID, &a.Label, &a.Line1, &a.Line2, &a.City, &a.Region,
		&a.PostalCode, &a.Phone, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *PostgresRepository) queryOne(ctx context.Context, query string, args ...any) (*models.Address, error) {
	a, err := scanAddress(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func wrapWriteErr(err error) error {
	if dbx.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", common.ErrConflict, err)
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Address{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Address, error) {
	return r.queryOne(ctx, selectColumns+` WHERE id = $1`, id)
}

func (r *PostgresRepository) GetDefault(ctx context.Context, userID string) (*models.Address, error) {
	return r.queryOne(ctx, selectColumns+` WHERE user_id = $1 AND is_default`, userID)
}

func (r *PostgresRepository) MostRecent(ctx context.Context, userID string) (*models.Address, error) {
	return r.queryOne(ctx, selectColumns+` WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`, userID)
}

func (r *PostgresRepository) HasAny(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM addresses WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Address) (*models.Address, error) {
	query :=
		`INSERT INTO addresses (user_id, label, line1, line2, city, region, postal_code, phone, is_default)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		a.UserID, a.Label, a.Line1, a.Line2, a.City, a.Region, a.PostalCode, a.Phone, a.IsDefault,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, wrapWriteErr(err)
	}
	return a, nil
}

func (r *PostgresRepository) Update(ctx context.Context, a *models.Address) (*models.Address, error) {
	query :=
		`UPDATE addresses
		 SET label = $2, line1 = $3, line2 = $4, city = $5, region = $6,
		     postal_code = $7, phone = $8, is_default = $9, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		a.ID, a.Label, a.Line1, a.Line2, a.City, a.Region, a.PostalCode, a.Phone, a.IsDefault,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, wrapWriteErr(err)
	}
	return a, nil
}

func (r *PostgresRepository) ClearDefault(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE addresses SET is_default = false, updated_at = now() WHERE user_id = $1 AND is_default`, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetDefault(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE addresses SET is_default = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return wrapWriteErr(err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
