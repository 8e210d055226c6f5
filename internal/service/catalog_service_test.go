package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorbuddy/marketplace-service/internal/domain"
	"github.com/vendorbuddy/marketplace-service/internal/repository"
	apperrors "github.com/vendorbuddy/marketplace-service/pkg/util/errorutil"
)

// fakeProductRepo is an in-memory ProductRepository that records which
// query variant was selected.
type fakeProductRepo struct {
	store       map[string]*domain.Product
	lastQuery   string
	lastSort    repository.SortSpec
	saveCalls   int
	deleteCalls int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{store: map[string]*domain.Product{}}
}

func (f *fakeProductRepo) Save(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	} else if _, ok := f.store[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.saveCalls++
	copied := *product
	f.store[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	product, ok := f.store[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, ok := f.store[id]
	return ok, nil
}

func (f *fakeProductRepo) DeleteByID(ctx context.Context, id string) error {
	if _, ok := f.store[id]; !ok {
		return pgx.ErrNoRows
	}
	f.deleteCalls++
	delete(f.store, id)
	return nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context, page repository.PageRequest, sort repository.SortSpec) (*repository.ProductPage, error) {
	f.lastQuery = "all"
	f.lastSort = sort
	return f.emptyPage(page), nil
}

func (f *fakeProductRepo) FindBySupplierID(ctx context.Context, supplierID string) ([]domain.Product, error) {
	f.lastQuery = "by_supplier"
	products := []domain.Product{}
	for _, p := range f.store {
		if p.SupplierID == supplierID {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (f *fakeProductRepo) SearchText(ctx context.Context, term string, page repository.PageRequest) (*repository.ProductPage, error) {
	f.lastQuery = "text"
	return f.emptyPage(page), nil
}

func (f *fakeProductRepo) SearchTextWithPriceRange(ctx context.Context, term string, minPrice, maxPrice float64, page repository.PageRequest) (*repository.ProductPage, error) {
	f.lastQuery = "text_price_range"
	return f.emptyPage(page), nil
}

func (f *fakeProductRepo) FindByCategory(ctx context.Context, category string, page repository.PageRequest) (*repository.ProductPage, error) {
	f.lastQuery = "category"
	return f.emptyPage(page), nil
}

func (f *fakeProductRepo) FindByCategoryAndPriceRange(ctx context.Context, category string, minPrice, maxPrice float64, page repository.PageRequest) (*repository.ProductPage, error) {
	f.lastQuery = "category_price_range"
	return f.emptyPage(page), nil
}

func (f *fakeProductRepo) FindByPriceRange(ctx context.Context, minPrice, maxPrice float64, page repository.PageRequest) (*repository.ProductPage, error) {
	f.lastQuery = "price_range"
	return f.emptyPage(page), nil
}

func (f *fakeProductRepo) FindAvailable(ctx context.Context, page repository.PageRequest) (*repository.ProductPage, error) {
	f.lastQuery = "available"
	return f.emptyPage(page), nil
}

func (f *fakeProductRepo) emptyPage(page repository.PageRequest) *repository.ProductPage {
	return &repository.ProductPage{Items: []domain.Product{}, Page: page.Page, Size: page.Size}
}

func (f *fakeProductRepo) seed(t *testing.T, product domain.Product) string {
	t.Helper()
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	f.store[product.ID] = &product
	return product.ID
}

func newTestCatalog(repo *fakeProductRepo) *CatalogService {
	return NewCatalogService(CatalogDependencies{ProductRepo: repo})
}

func floatPtr(v float64) *float64 { return &v }

func TestSearch_Precedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		term     string
		minPrice *float64
		maxPrice *float64
		category string
		want     string
	}{
		{"term with full range", "tomato", floatPtr(1), floatPtr(5), "", "text_price_range"},
		{"term beats category", "tomato", floatPtr(1), floatPtr(5), "vegetables", "text_price_range"},
		{"term only", "tomato", nil, nil, "", "text"},
		{"term with single bound", "tomato", floatPtr(1), nil, "", "text"},
		{"category with full range", "", floatPtr(1), floatPtr(5), "vegetables", "category_price_range"},
		{"category only", "", nil, nil, "vegetables", "category"},
		{"category with single bound", "", nil, floatPtr(5), "vegetables", "category"},
		{"range only", "", floatPtr(1), floatPtr(5), "", "price_range"},
		{"single bound falls to available", "", floatPtr(1), nil, "", "available"},
		{"nothing set", "", nil, nil, "", "available"},
		{"whitespace term is absent", "   ", nil, nil, "", "available"},
		{"whitespace category is absent", "", nil, nil, "  ", "available"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeProductRepo()
			svc := newTestCatalog(repo)

			_, err := svc.Search(context.Background(), tc.term, tc.minPrice, tc.maxPrice, tc.category, 0, 20)
			require.NoError(t, err)
			assert.Equal(t, tc.want, repo.lastQuery)
		})
	}
}

func TestList_SortDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sortDir        string
		wantDescending bool
	}{
		{"desc", true},
		{"DESC", true},
		{"Desc", true},
		{"asc", false},
		{"", false},
		{"sideways", false},
	}

	for _, tc := range tests {
		repo := newFakeProductRepo()
		svc := newTestCatalog(repo)

		_, err := svc.List(context.Background(), 0, 10, "unitPrice", tc.sortDir)
		require.NoError(t, err)
		assert.Equal(t, tc.wantDescending, repo.lastSort.Descending, "sortDir=%q", tc.sortDir)
		assert.Equal(t, "unitPrice", repo.lastSort.Field)
	}
}

func TestCreate_StampsTimestamps(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	svc := newTestCatalog(repo)

	before := time.Now()
	created, err := svc.Create(context.Background(), &domain.Product{
		SupplierID: "sup-1",
		Name:       "Eggs",
		Category:   "dairy",
		UnitPrice:  3.50,
		Stock:      12,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.Before(before))
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestUpdate_PartialMerge(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	svc := newTestCatalog(repo)
	id := repo.seed(t, domain.Product{
		SupplierID:    "sup-1",
		Name:          "Eggs",
		Category:      "dairy",
		UnitPrice:     3.50,
		UnitType:      "dozen",
		Stock:         3,
		DeliveryRange: "10km",
		CreatedAt:     time.Now().Add(-time.Hour),
		UpdatedAt:     time.Now().Add(-time.Hour),
	})

	newStock := 5
	updated, err := svc.Update(context.Background(), id, domain.ProductPatch{Stock: &newStock})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, "Eggs", updated.Name)
	assert.Equal(t, "dairy", updated.Category)
	assert.Equal(t, 3.50, updated.UnitPrice)
	assert.Equal(t, "dozen", updated.UnitType)
	assert.Equal(t, "10km", updated.DeliveryRange)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	stored := repo.store[id]
	assert.Equal(t, 5, stored.Stock)
	assert.Equal(t, "Eggs", stored.Name)
}

func TestUpdate_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestCatalog(newFakeProductRepo())

	name := "anything"
	_, err := svc.Update(context.Background(), "missing", domain.ProductPatch{Name: &name})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDelete_NotFound_NoMutation(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	svc := newTestCatalog(repo)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Zero(t, repo.deleteCalls)
}

func TestDelete_Existing(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	svc := newTestCatalog(repo)
	id := repo.seed(t, domain.Product{Name: "Milk", Category: "dairy"})

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.NotContains(t, repo.store, id)
}

func TestGetByID_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestCatalog(newFakeProductRepo())

	_, err := svc.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAdjustStock_Decrement(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	svc := newTestCatalog(repo)
	id := repo.seed(t, domain.Product{Name: "Eggs", Stock: 7})

	updated, err := svc.AdjustStock(context.Background(), id, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
}

func TestAdjustStock_Insufficient_NoPartialMutation(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	svc := newTestCatalog(repo)
	id := repo.seed(t, domain.Product{Name: "Eggs", Stock: 7})

	_, err := svc.AdjustStock(context.Background(), id, 10)
	require.Error(t, err)
	assert.True(t, apperrors.IsInsufficientStock(err))
	assert.Equal(t, 7, repo.store[id].Stock)
	assert.Zero(t, repo.saveCalls)
}

func TestAdjustStock_NegativeQuantityRestocks(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	svc := newTestCatalog(repo)
	id := repo.seed(t, domain.Product{Name: "Eggs", Stock: 7})

	updated, err := svc.AdjustStock(context.Background(), id, -10)
	require.NoError(t, err)
	assert.Equal(t, 17, updated.Stock)
	assert.Equal(t, 17, repo.store[id].Stock)
}

func TestAdjustStock_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestCatalog(newFakeProductRepo())

	_, err := svc.AdjustStock(context.Background(), "missing", 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

// fakeCache returns a canned product for one id.
type fakeCache struct {
	product     *domain.Product
	invalidated []string
}

func (f *fakeCache) Get(ctx context.Context, id string) (*domain.Product, bool) {
	if f.product != nil && f.product.ID == id {
		copied := *f.product
		return &copied, true
	}
	return nil, false
}

func (f *fakeCache) Set(ctx context.Context, product *domain.Product) {}

func (f *fakeCache) Invalidate(ctx context.Context, id string) {
	f.invalidated = append(f.invalidated, id)
}

func TestGetByID_CacheHitSkipsRepository(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	cached := &domain.Product{ID: "p1", Name: "Cheese"}
	svc := NewCatalogService(CatalogDependencies{ProductRepo: repo, Cache: &fakeCache{product: cached}})

	got, err := svc.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Cheese", got.Name)
}

func TestAdjustStock_InvalidatesCache(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	id := repo.seed(t, domain.Product{Name: "Eggs", Stock: 7})
	fc := &fakeCache{}
	svc := NewCatalogService(CatalogDependencies{ProductRepo: repo, Cache: fc})

	_, err := svc.AdjustStock(context.Background(), id, 2)
	require.NoError(t, err)
	assert.Contains(t, fc.invalidated, id)
}
