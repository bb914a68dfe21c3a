package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/agrodash/agroadmin/internal/logging"
	"github.com/agrodash/agroadmin/internal/server/attachments"
	"github.com/agrodash/agroadmin/internal/server/auth"
	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/agrodash/agroadmin/internal/server/storage"
	"github.com/agrodash/agroadmin/internal/server/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	testStorageURL = "http://minio:9000"
	cropBucket     = "crop-images"
)

type cropFixture struct {
	svc   *CropService
	repo  *memCropsRepo
	store *attachments.MemStore
	logs  *observer.ObservedLogs
}

func newCropFixture(t *testing.T) *cropFixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := logging.NewZapLogger(zap.New(core))
	store := attachments.NewMemStore(testStorageURL)
	repo := newMemCrops()
	rm := &fakeRepoManager{crops: repo}
	images := attachments.NewManager(store, cropBucket, log, nil)
	return &cropFixture{
		svc:   NewCropService(nil, rm, newValidator(), images, nil),
		repo:  repo,
		store: store,
		logs:  logs,
	}
}

func signedIn() context.Context {
	return auth.WithSession(context.Background(), auth.Session{UserID: "user-1", AccessToken: "tok"})
}

func png() *attachments.File {
	return &attachments.File{Name: "Maize.PNG", ContentType: "image/png", Size: 4, Body: strings.NewReader("data")}
}

func cropInput() models.CropInput {
	return models.CropInput{Name: "Maize", Season: "summer", PricePerKg: decimal.RequireFromString("0.45")}
}

func storageErr(kind storage.Kind) error {
	return &storage.Error{Kind: kind, Op: "put", Bucket: cropBucket, Err: errors.New("boom")}
}

func TestCropCreate_NoFile(t *testing.T) {
	f := newCropFixture(t)

	c, err := f.svc.Create(signedIn(), cropInput(), nil)
	require.NoError(t, err)
	assert.Nil(t, c.ImageURL)
	assert.Equal(t, 1, f.repo.writes)
	assert.Equal(t, 0, f.store.Len())
}

func TestCropCreate_UploadsThenWrites(t *testing.T) {
	f := newCropFixture(t)

	c, err := f.svc.Create(signedIn(), cropInput(), png())
	require.NoError(t, err)
	require.NotNil(t, c.ImageURL)

	re := regexp.MustCompile(`^http://minio:9000/crop-images/user-1/[0-9a-f-]{36}\.png$`)
	assert.Regexp(t, re, *c.ImageURL)

	key, ok := f.store.KeyFromURL(cropBucket, *c.ImageURL)
	require.True(t, ok)
	body, ok := f.store.Object(cropBucket, key)
	require.True(t, ok)
	assert.Equal(t, "data", string(body))

	stored, err := f.repo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ImageURL, stored.ImageURL)
}

func TestCropCreate_UnauthenticatedSavesWithoutImage(t *testing.T) {
	f := newCropFixture(t)

	c, err := f.svc.Create(context.Background(), cropInput(), png())
	require.NoError(t, err)
	assert.Nil(t, c.ImageURL)
	assert.Equal(t, 1, f.repo.writes)
	assert.Equal(t, 0, f.store.Len())
	assert.Equal(t, 1, f.logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestCropCreate_ExpectedStorageErrorsDegrade(t *testing.T) {
	for _, kind := range []storage.Kind{storage.KindPermissionDenied, storage.KindBucketMissing} {
		t.Run(kind.String(), func(t *testing.T) {
			f := newCropFixture(t)
			f.store.UploadErr = storageErr(kind)

			c, err := f.svc.Create(signedIn(), cropInput(), png())
			require.NoError(t, err)
			assert.Nil(t, c.ImageURL)
			assert.Equal(t, 1, f.repo.writes)
			assert.Equal(t, 1, f.logs.FilterLevelExact(zapcore.WarnLevel).Len())
		})
	}
}

func TestCropCreate_UnexpectedStorageErrorAborts(t *testing.T) {
	f := newCropFixture(t)
	f.store.UploadErr = storageErr(storage.KindUnknown)

	_, err := f.svc.Create(signedIn(), cropInput(), png())
	require.Error(t, err)
	assert.ErrorIs(t, err, f.store.UploadErr)
	assert.Equal(t, 0, f.repo.writes, "record must not be written")
}

func TestCropCreate_ValidationBeforeUpload(t *testing.T) {
	f := newCropFixture(t)
	in := cropInput()
	in.Name = ""
	in.PricePerKg = decimal.NewFromInt(-1)

	_, err := f.svc.Create(signedIn(), in, png())
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Equal(t, 0, f.store.Len())
	assert.Equal(t, 0, f.repo.writes)
}

func TestCropUpdate_KeepsCurrentImageOnDeniedUpload(t *testing.T) {
	f := newCropFixture(t)
	old := testStorageURL + "/crop-images/user-1/old.png"
	f.repo.rows["c1"] = &models.Crop{ID: "c1", Name: "Maize", ImageURL: &old}
	f.store.UploadErr = storageErr(storage.KindPermissionDenied)

	in := cropInput()
	in.Name = "Yellow maize"
	c, err := f.svc.Update(signedIn(), "c1", in, png())
	require.NoError(t, err)
	require.NotNil(t, c.ImageURL)
	assert.Equal(t, old, *c.ImageURL)
	assert.Equal(t, "Yellow maize", f.repo.rows["c1"].Name)
}

func TestCropUpdate_NoFileKeepsImage(t *testing.T) {
	f := newCropFixture(t)
	old := testStorageURL + "/crop-images/user-1/old.png"
	f.repo.rows["c1"] = &models.Crop{ID: "c1", Name: "Maize", ImageURL: &old}

	c, err := f.svc.Update(signedIn(), "c1", cropInput(), nil)
	require.NoError(t, err)
	assert.Equal(t, old, *c.ImageURL)
}

func TestCropUpdate_ReplacesImage(t *testing.T) {
	f := newCropFixture(t)
	old := testStorageURL + "/crop-images/user-1/old.png"
	f.repo.rows["c1"] = &models.Crop{ID: "c1", Name: "Maize", ImageURL: &old}

	c, err := f.svc.Update(signedIn(), "c1", cropInput(), png())
	require.NoError(t, err)
	assert.NotEqual(t, old, *c.ImageURL)
	assert.Equal(t, 1, f.store.Len())
}

func TestCropUpdate_NotFoundSkipsUpload(t *testing.T) {
	f := newCropFixture(t)

	_, err := f.svc.Update(signedIn(), "missing", cropInput(), png())
	require.Error(t, err)
	assert.Equal(t, 0, f.store.Len())
}

func TestCropDelete_ReleasesImageAfterRow(t *testing.T) {
	f := newCropFixture(t)
	c, err := f.svc.Create(signedIn(), cropInput(), png())
	require.NoError(t, err)
	require.Equal(t, 1, f.store.Len())

	require.NoError(t, f.svc.Delete(signedIn(), c.ID))
	assert.Empty(t, f.repo.rows)
	assert.Equal(t, 0, f.store.Len())
}

func TestCropDelete_FailedRowDeleteKeepsImage(t *testing.T) {
	f := newCropFixture(t)
	c, err := f.svc.Create(signedIn(), cropInput(), png())
	require.NoError(t, err)
	f.repo.deleteErr = errors.New("fk violation")

	require.Error(t, f.svc.Delete(signedIn(), c.ID))
	assert.Equal(t, 1, f.store.Len())
}

func TestCropDelete_CleanupFailureIsSilent(t *testing.T) {
	f := newCropFixture(t)
	c, err := f.svc.Create(signedIn(), cropInput(), png())
	require.NoError(t, err)
	f.store.RemoveErr = storageErr(storage.KindPermissionDenied)

	require.NoError(t, f.svc.Delete(signedIn(), c.ID))
	assert.Empty(t, f.repo.rows)
	assert.Equal(t, 1, f.logs.FilterMessage("attachment cleanup failed").Len())
}

func TestCropDelete_ForeignImageUntouched(t *testing.T) {
	f := newCropFixture(t)
	foreign := "https://cdn.example.com/maize.png"
	f.repo.rows["c1"] = &models.Crop{ID: "c1", Name: "Maize", ImageURL: &foreign}

	require.NoError(t, f.svc.Delete(signedIn(), "c1"))
	assert.Equal(t, 1, f.logs.FilterMessage("attachment outside bucket, not removing").Len())
}
