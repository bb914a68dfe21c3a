package server

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/agrodash/agroadmin/internal/logging"
	"github.com/agrodash/agroadmin/internal/server/attachments"
	"github.com/agrodash/agroadmin/internal/server/config"
	"github.com/agrodash/agroadmin/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.EndpointAddrHTTP = "127.0.0.1:0"
	cfg.EndpointAddrGRPC = "127.0.0.1:0"
	cfg.StorageBackend = "memory"
	cfg.SettingsPath = t.TempDir() + "/settings.yaml"
	return cfg
}

func TestApp_RunStopsOnCancelWithoutLeaks(t *testing.T) {
	defer goleak.VerifyNone(t)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	cfg := testConfig(t)
	app := newApp(cfg, logging.Nop(), db, repomanager.NewPostgresRepositoryManager(), attachments.NewMemStore(cfg.S3PublicBaseURL))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		t.Fatalf("app exited too early: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after cancel")
	}

	require.NoError(t, app.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApp_RunFailsOnBadAddress(t *testing.T) {
	defer goleak.VerifyNone(t)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	cfg := testConfig(t)
	cfg.EndpointAddrGRPC = "127.0.0.1:99999"
	app := newApp(cfg, logging.Nop(), db, repomanager.NewPostgresRepositoryManager(), attachments.NewMemStore(cfg.S3PublicBaseURL))

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(context.Background()) }()

	select {
	case err := <-errCh:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not fail on bad gRPC address")
	}
	require.NoError(t, app.Close())
}

func TestNewStore_UnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageBackend = "ftp"

	_, err := newStore(context.Background(), cfg, logging.Nop())
	require.ErrorContains(t, err, "unknown storage backend")
}

func TestNewStore_Memory(t *testing.T) {
	cfg := testConfig(t)

	s, err := newStore(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	require.IsType(t, &attachments.MemStore{}, s)
}
