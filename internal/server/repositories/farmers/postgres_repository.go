package farmers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/agrodash/agroadmin/internal/common"
	"github.com/agrodash/agroadmin/internal/dbx"
	"github.com/agrodash/agroadmin/internal/server/models"
)

const selectColumns = `SELECT id, full_name, phone, region, farm_size_ha, verified, created_at, updated_at FROM farmers`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanFarmer(s interface{ Scan(...any) error }) (*models.Farmer, error) {
	f := &models.Farmer{}
	err := s.Scan(&f.ID, &f.FullName, &f.Phone, &f.Region, &f.FarmSizeHa, &f.Verified, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func (r *PostgresRepository) List(ctx context.Context, filter models.FarmerFilter) ([]models.Farmer, error) {
	var (
		where []string
		args  []any
	)
	if filter.Region != "" {
		args = append(args, filter.Region)
		where = append(where, fmt.Sprintf("region = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(full_name ILIKE $%d OR phone ILIKE $%d)", len(args), len(args)))
	}

	query := selectColumns
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Farmer{}
	for rows.Next() {
		f, err := scanFarmer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Farmer, error) {
	f, err := scanFarmer(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) Create(ctx context.Context, f *models.Farmer) (*models.Farmer, error) {
	query :=
		`INSERT INTO farmers (full_name, phone, region, farm_size_ha, verified)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, f.FullName, f.Phone, f.Region, f.FarmSizeHa, f.Verified).
		Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) Update(ctx context.Context, f *models.Farmer) (*models.Farmer, error) {
	query :=
		`UPDATE farmers
		 SET full_name = $2, phone = $3, region = $4, farm_size_ha = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING verified, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, f.ID, f.FullName, f.Phone, f.Region, f.FarmSizeHa).
		Scan(&f.Verified, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE farmers SET verified = $2, updated_at = now() WHERE id = $1`, id, verified)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM farmers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
