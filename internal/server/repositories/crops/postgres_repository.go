package crops

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

const selectColumns = `SELECT id, name, category_id, variety, season, description, price_per_kg, image_url, created_at, updated_at FROM crops`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCrop(s scanner) (*models.Crop, error) {
	c := &models.Crop{}
	err := s.Scan(&c.ID, &c.Name, &c.CategoryID, &c.Variety, &c.Season, &c.Description,
		&c.PricePerKg, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *PostgresRepository) List(ctx context.Context, filter models.CropFilter) ([]models.Crop, error) {
	var (
		where []string
		args  []any
	)
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR variety ILIKE $%d)", len(args), len(args)))
	}

	query := selectColumns
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Crop{}
	for rows.Next() {
		c, err := scanCrop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Crop, error) {
	c, err := scanCrop(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Crop) (*models.Crop, error) {
	query :=
		`INSERT INTO crops (name, category_id, variety, season, description, price_per_kg, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.CategoryID, c.Variety, c.Season, c.Description, c.PricePerKg, c.ImageURL,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Crop) (*models.Crop, error) {
	query :=
		`UPDATE crops
		 SET name = $2, category_id = $3, variety = $4, season = $5, description = $6,
		     price_per_kg = $7, image_url = $8, updated_at = now()
		 WHERE id = $1
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.Name, c.CategoryID, c.Variety, c.Season, c.Description, c.PricePerKg, c.ImageURL,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM crops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
