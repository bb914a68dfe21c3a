package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/agrodash/agroadmin/internal/common"
	"github.com/agrodash/agroadmin/internal/dbx"
	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/agrodash/agroadmin/internal/server/repositories/activity"
	"github.com/agrodash/agroadmin/internal/server/repositories/addresses"
	"github.com/agrodash/agroadmin/internal/server/repositories/categories"
	"github.com/agrodash/agroadmin/internal/server/repositories/crops"
	"github.com/agrodash/agroadmin/internal/server/repositories/farmers"
	"github.com/agrodash/agroadmin/internal/server/repositories/feed"
	"github.com/agrodash/agroadmin/internal/server/repositories/orders"
	"github.com/agrodash/agroadmin/internal/server/repositories/repomanager"
	"github.com/agrodash/agroadmin/internal/server/validation"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// -------- repository manager --------

type fakeRepoManager struct {
	repomanager.RepositoryManager
	categories *fakeCategoriesRepo
	crops      *memCropsRepo
	farmers    *fakeFarmersRepo
	addresses  *memAddressesRepo
	orders     *fakeOrdersRepo
	feed       *fakeFeedRepo
	activity   *fakeActivityRepo
}

func (m *fakeRepoManager) Categories(dbx.DBTX) categories.Repository { return m.categories }
func (m *fakeRepoManager) Crops(dbx.DBTX) crops.Repository           { return m.crops }
func (m *fakeRepoManager) Farmers(dbx.DBTX) farmers.Repository       { return m.farmers }
func (m *fakeRepoManager) Addresses(dbx.DBTX) addresses.Repository   { return m.addresses }
func (m *fakeRepoManager) Orders(dbx.DBTX) orders.Repository         { return m.orders }
func (m *fakeRepoManager) Feed(dbx.DBTX) feed.Repository             { return m.feed }
func (m *fakeRepoManager) Activity(dbx.DBTX) activity.Repository     { return m.activity }

// -------- helpers --------

// newTxDB returns a real *sql.DB whose transactions the fakes ignore; it
// lets dbx.WithTx run without sqlmock expectations.
func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newValidator() Validator { return validation.New() }

func strptr(s string) *string { return &s }

// -------- categories --------

type fakeCategoriesRepo struct {
	categories.Repository
	created   []*models.Category
	createErr error
	deleteErr error
}

func (f *fakeCategoriesRepo) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = uuid.NewString()
	f.created = append(f.created, c)
	return c, nil
}

func (f *fakeCategoriesRepo) Delete(ctx context.Context, id string) error {
	return f.deleteErr
}

// -------- crops --------

type memCropsRepo struct {
	crops.Repository
	rows      map[string]*models.Crop
	writes    int
	createErr error
	deleteErr error
}

func newMemCrops() *memCropsRepo {
	return &memCropsRepo{rows: map[string]*models.Crop{}}
}

func (r *memCropsRepo) GetByID(ctx context.Context, id string) (*models.Crop, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCropsRepo) Create(ctx context.Context, c *models.Crop) (*models.Crop, error) {
	r.writes++
	if r.createErr != nil {
		return nil, r.createErr
	}
	c.ID = uuid.NewString()
	cp := *c
	r.rows[c.ID] = &cp
	return c, nil
}

func (r *memCropsRepo) Update(ctx context.Context, c *models.Crop) (*models.Crop, error) {
	r.writes++
	if _, ok := r.rows[c.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	r.rows[c.ID] = &cp
	return c, nil
}

func (r *memCropsRepo) Delete(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.rows, id)
	return nil
}

// -------- farmers --------

type fakeFarmersRepo struct {
	farmers.Repository
	farmer   *models.Farmer
	setCalls []bool
	setErr   error
}

func (f *fakeFarmersRepo) GetByID(ctx context.Context, id string) (*models.Farmer, error) {
	if f.farmer == nil || f.farmer.ID != id {
		return nil, common.ErrorNotFound
	}
	cp := *f.farmer
	return &cp, nil
}

func (f *fakeFarmersRepo) SetVerified(ctx context.Context, id string, verified bool) error {
	f.setCalls = append(f.setCalls, verified)
	if f.setErr != nil {
		return f.setErr
	}
	f.farmer.Verified = verified
	return nil
}

// -------- addresses --------

// memAddressesRepo mirrors the table including its partial unique index:
// a second default for the same user is rejected with common.ErrConflict.
type memAddressesRepo struct {
	addresses.Repository
	mu    sync.Mutex
	rows  map[string]*models.Address
	clock time.Time
	calls []string

	failOn map[string]error
}

func newMemAddresses() *memAddressesRepo {
	return &memAddressesRepo{
		rows:   map[string]*models.Address{},
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		failOn: map[string]error{},
	}
}

func (r *memAddressesRepo) step(name string) error {
	r.calls = append(r.calls, name)
	return r.failOn[name]
}

func (r *memAddressesRepo) defaultsOf(userID string) int {
	n := 0
	for _, a := range r.rows {
		if a.UserID == userID && a.IsDefault {
			n++
		}
	}
	return n
}

func (r *memAddressesRepo) byUser(userID string) []models.Address {
	var out []models.Address
	for _, a := range r.rows {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *memAddressesRepo) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.step("ListByUser"); err != nil {
		return nil, err
	}
	out := r.byUser(userID)
	sort.SliceStable(out, func(i, j int) bool { return out[i].IsDefault && !out[j].IsDefault })
	return out, nil
}

func (r *memAddressesRepo) GetByID(ctx context.Context, id string) (*models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.step("GetByID"); err != nil {
		return nil, err
	}
	a, ok := r.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAddressesRepo) GetDefault(ctx context.Context, userID string) (*models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.rows {
		if a.UserID == userID && a.IsDefault {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memAddressesRepo) HasAny(ctx context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.step("HasAny"); err != nil {
		return false, err
	}
	return len(r.byUser(userID)) > 0, nil
}

func (r *memAddressesRepo) MostRecent(ctx context.Context, userID string) (*models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.step("MostRecent"); err != nil {
		return nil, err
	}
	all := r.byUser(userID)
	if len(all) == 0 {
		return nil, common.ErrorNotFound
	}
	return &all[0], nil
}

func (r *memAddressesRepo) Create(ctx context.Context, a *models.Address) (*models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.step("Create"); err != nil {
		return nil, err
	}
	if a.IsDefault && r.defaultsOf(a.UserID) > 0 {
		return nil, common.ErrConflict
	}
	r.clock = r.clock.Add(time.Minute)
	a.ID = uuid.NewString()
	a.CreatedAt, a.UpdatedAt = r.clock, r.clock
	cp := *a
	r.rows[a.ID] = &cp
	return a, nil
}

func (r *memAddressesRepo) Update(ctx context.Context, a *models.Address) (*models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.step("Update"); err != nil {
		return nil, err
	}
	cur, ok := r.rows[a.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if a.IsDefault && !cur.IsDefault && r.defaultsOf(a.UserID) > 0 {
		return nil, common.ErrConflict
	}
	cp := *a
	r.rows[a.ID] = &cp
	return a, nil
}

func (r *memAddressesRepo) ClearDefault(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.step("ClearDefault"); err != nil {
		return err
	}
	for _, a := range r.rows {
		if a.UserID == userID {
			a.IsDefault = false
		}
	}
	return nil
}

func (r *memAddressesRepo) SetDefault(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.step("SetDefault"); err != nil {
		return err
	}
	a, ok := r.rows[id]
	if !ok {
		return common.ErrorNotFound
	}
	if !a.IsDefault && r.defaultsOf(a.UserID) > 0 {
		return common.ErrConflict
	}
	a.IsDefault = true
	return nil
}

func (r *memAddressesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.step("Delete"); err != nil {
		return err
	}
	if _, ok := r.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.rows, id)
	return nil
}

// -------- orders --------

type fakeOrdersRepo struct {
	orders.Repository
	order     *models.Order
	updates   [][2]string
	updateErr error
	counts    map[string]int
}

func (f *fakeOrdersRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, common.ErrorNotFound
	}
	cp := *f.order
	return &cp, nil
}

func (f *fakeOrdersRepo) UpdateStatus(ctx context.Context, id, from, to string) (*models.Order, error) {
	f.updates = append(f.updates, [2]string{from, to})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.order.Status = to
	cp := *f.order
	return &cp, nil
}

func (f *fakeOrdersRepo) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (f *fakeOrdersRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	return f.counts, nil
}

// -------- feed --------

type fakeFeedRepo struct {
	feed.Repository
	limit, offset int
	created       *models.FeedPost
}

func (f *fakeFeedRepo) List(ctx context.Context, limit, offset int) ([]models.FeedPost, error) {
	f.limit, f.offset = limit, offset
	return []models.FeedPost{}, nil
}

func (f *fakeFeedRepo) Create(ctx context.Context, p *models.FeedPost) (*models.FeedPost, error) {
	p.ID = "p1"
	f.created = p
	return p, nil
}

// -------- activity --------

type fakeActivityRepo struct {
	activity.Repository
	entries   []models.ActivityLog
	createErr error
	limit     int
}

func (f *fakeActivityRepo) Create(ctx context.Context, l *models.ActivityLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, *l)
	return nil
}

func (f *fakeActivityRepo) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	f.limit = limit
	return f.entries, nil
}
