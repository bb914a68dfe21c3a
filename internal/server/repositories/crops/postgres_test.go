package crops

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/agrodash/agroadmin/internal/common"
	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

var cols = []string{"id", "name", "category_id", "variety", "season", "description", "price_per_kg", "image_url", "created_at", "updated_at"}

func TestList_Filters(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		filter models.CropFilter
		query  string
		args   []driver.Value
	}{
		{
			name:  "no filter",
			query: `FROM\s+crops\s+ORDER\s+BY\s+name$`,
		},
		{
			name:   "category",
			filter: models.CropFilter{CategoryID: "cat-1"},
			query:  `FROM\s+crops\s+WHERE\s+category_id\s*=\s*\$1\s+ORDER\s+BY\s+name$`,
			args:   []driver.Value{"cat-1"},
		},
		{
			name:   "category and search",
			filter: models.CropFilter{CategoryID: "cat-1", Search: "mai"},
			query:  `WHERE\s+category_id\s*=\s*\$1\s+AND\s+\(name\s+ILIKE\s+\$2\s+OR\s+variety\s+ILIKE\s+\$2\)`,
			args:   []driver.Value{"cat-1", "%mai%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			exp := mock.ExpectQuery(tt.query)
			if len(tt.args) > 0 {
				exp = exp.WithArgs(tt.args...)
			}
			url := "http://s3/crop-images/u1/a.png"
			exp.WillReturnRows(sqlmock.NewRows(cols).
				AddRow("c1", "Maize", "cat-1", "H614", "summer", "", "12.50", url, now, now).
				AddRow("c2", "Millet", nil, "", "", "", "3", nil, now, now))

			got, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, url, *got[0].ImageURL)
			assert.True(t, got[0].PricePerKg.Equal(decimal.RequireFromString("12.5")))
			assert.Nil(t, got[1].CategoryID)
			assert.Nil(t, got[1].ImageURL)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`FROM\s+crops\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("c1", "Maize", nil, "", "", "", "1", nil, now, now))
	mock.ExpectQuery(`FROM\s+crops\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Maize", got.Name)

	_, err = repo.GetByID(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate_PersistsImageURL(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()
	url := "http://s3/crop-images/u1/x.jpg"
	price := decimal.RequireFromString("4.20")

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+crops\s*\(name,\s*category_id,\s*variety,\s*season,\s*description,\s*price_per_kg,\s*image_url\)`).
		WithArgs("Wheat", nil, "", "winter", "", price, &url).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("c9", now, now))

	got, err := repo.Create(context.Background(), &models.Crop{Name: "Wheat", Season: "winter", PricePerKg: price, ImageURL: &url})
	require.NoError(t, err)
	assert.Equal(t, "c9", got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+crops`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Crop{Name: "Wheat"})
	require.EqualError(t, err, "db error: db down")
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)^UPDATE\s+crops\s+SET\s+name\s*=\s*\$2.*image_url\s*=\s*\$8,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery(`(?s)^UPDATE\s+crops`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Crop{ID: "c1", Name: "Maize"})
	require.NoError(t, err)

	_, err = repo.Update(context.Background(), &models.Crop{ID: "ghost", Name: "Maize"})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE\s+FROM\s+crops\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^DELETE\s+FROM\s+crops`).
		WithArgs("c1").
		WillReturnError(errors.New("fk violation"))

	require.NoError(t, repo.Delete(context.Background(), "c1"))
	require.EqualError(t, repo.Delete(context.Background(), "c1"), "db error: fk violation")
}
