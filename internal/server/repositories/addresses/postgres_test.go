package addresses

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
	"github.com/jackc/pgx/v5/pgconn"
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

var cols = []string{"id", "user_id", "label", "line1", "line2", "city", "region", "postal_code", "phone", "is_default", "created_at", "updated_at"}

func row(id string, def bool, created time.Time) []driver.Value {
	return []driver.Value{id, "u1", "", "Farm road 1", "", "Nakuru", "", "", "", def, created, created}
}

func TestListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`FROM\s+addresses\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+is_default\s+DESC,\s*created_at\s+DESC$`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(row("a1", true, now)...).AddRow(row("a2", false, now)...))

	got, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].IsDefault)
}

func TestGetDefault_None(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`WHERE\s+user_id\s*=\s*\$1\s+AND\s+is_default$`).
		WithArgs("u1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetDefault(context.Background(), "u1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMostRecent_OrdersByCreatedAtThenID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s+LIMIT\s+1$`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(row("a3", false, now)...))

	got, err := repo.MostRecent(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "a3", got.ID)
}

func TestHasAny(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`^SELECT\s+EXISTS\s+\(SELECT\s+1\s+FROM\s+addresses\s+WHERE\s+user_id\s*=\s*\$1\)$`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`^SELECT\s+EXISTS`).
		WithArgs("u2").
		WillReturnError(errors.New("db down"))

	ok, err := repo.HasAny(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.HasAny(context.Background(), "u2")
	require.EqualError(t, err, "db error: db down")
}

func TestCreate_UniqueViolationIsConflict(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+addresses`).
		WithArgs("u1", "", "Farm road 1", "", "Nakuru", "", "", "", true).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.Address{UserID: "u1", Line1: "Farm road 1", City: "Nakuru", IsDefault: true})
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+addresses`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("a1", now, now))

	got, err := repo.Create(context.Background(), &models.Address{UserID: "u1", Line1: "x", City: "y"})
	require.NoError(t, err)
	assert.Equal(t, "a1", got.ID)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)^UPDATE\s+addresses\s+SET\s+label\s*=\s*\$2.*is_default\s*=\s*\$9`).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectQuery(`(?s)^UPDATE\s+addresses\s+SET\s+label`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Address{ID: "a1"})
	require.NoError(t, err)
	_, err = repo.Update(context.Background(), &models.Address{ID: "ghost"})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestClearAndSetDefault(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^UPDATE\s+addresses\s+SET\s+is_default\s*=\s*false.*WHERE\s+user_id\s*=\s*\$1\s+AND\s+is_default$`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`^UPDATE\s+addresses\s+SET\s+is_default\s*=\s*true.*WHERE\s+id\s*=\s*\$1$`).
		WithArgs("a2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^UPDATE\s+addresses\s+SET\s+is_default\s*=\s*true`).
		WithArgs("a3").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	require.NoError(t, repo.ClearDefault(context.Background(), "u1"), "clearing zero rows is fine")
	require.NoError(t, repo.SetDefault(context.Background(), "a2"))
	require.ErrorIs(t, repo.SetDefault(context.Background(), "a3"), common.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE\s+FROM\s+addresses\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), "a1"), common.ErrorNotFound)
}
