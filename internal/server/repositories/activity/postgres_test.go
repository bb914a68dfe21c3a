package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/agrodash/agroadmin/internal/server/models"
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

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+activity_logs`).
		WithArgs("u1", "create", "crop", "c1", "Maize").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("l1", now))
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+activity_logs`).
		WillReturnError(errors.New("disk full"))

	l := &models.ActivityLog{ActorID: "u1", Action: "create", Entity: "crop", EntityID: "c1", Details: "Maize"}
	require.NoError(t, repo.Create(context.Background(), l))
	assert.Equal(t, "l1", l.ID)

	require.EqualError(t, repo.Create(context.Background(), &models.ActivityLog{}), "db error: disk full")
}

func TestRecent(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM\s+activity_logs\s+ORDER\s+BY\s+created_at\s+DESC\s+LIMIT\s+\$1$`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "actor_id", "action", "entity", "entity_id", "details", "created_at"}).
			AddRow("l2", "u1", "delete", "crop", "c1", "", now).
			AddRow("l1", "u1", "create", "crop", "c1", "", now.Add(-time.Minute)))

	got, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "delete", got[0].Action)
}
