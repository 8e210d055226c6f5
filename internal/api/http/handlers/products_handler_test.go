package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorbuddy/marketplace-service/internal/auth"
	"github.com/vendorbuddy/marketplace-service/internal/domain"
	"github.com/vendorbuddy/marketplace-service/internal/repository"
	"github.com/vendorbuddy/marketplace-service/internal/service"
	apperrors "github.com/vendorbuddy/marketplace-service/pkg/util/errorutil"
)

// memProductRepo is a minimal in-memory ProductRepository for handler tests.
type memProductRepo struct {
	store map[string]*domain.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{store: map[string]*domain.Product{}}
}

func (m *memProductRepo) Save(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = "generated"
	}
	copied := *product
	m.store[product.ID] = &copied
	return nil
}

func (m *memProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	product, ok := m.store[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *product
	return &copied, nil
}

func (m *memProductRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, ok := m.store[id]
	return ok, nil
}

func (m *memProductRepo) DeleteByID(ctx context.Context, id string) error {
	if _, ok := m.store[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.store, id)
	return nil
}

func (m *memProductRepo) FindAll(ctx context.Context, page repository.PageRequest, sort repository.SortSpec) (*repository.ProductPage, error) {
	return &repository.ProductPage{}, nil
}

func (m *memProductRepo) FindBySupplierID(ctx context.Context, supplierID string) ([]domain.Product, error) {
	return nil, nil
}

func (m *memProductRepo) SearchText(ctx context.Context, term string, page repository.PageRequest) (*repository.ProductPage, error) {
	return &repository.ProductPage{}, nil
}

func (m *memProductRepo) SearchTextWithPriceRange(ctx context.Context, term string, minPrice, maxPrice float64, page repository.PageRequest) (*repository.ProductPage, error) {
	return &repository.ProductPage{}, nil
}

func (m *memProductRepo) FindByCategory(ctx context.Context, category string, page repository.PageRequest) (*repository.ProductPage, error) {
	return &repository.ProductPage{}, nil
}

func (m *memProductRepo) FindByCategoryAndPriceRange(ctx context.Context, category string, minPrice, maxPrice float64, page repository.PageRequest) (*repository.ProductPage, error) {
	return &repository.ProductPage{}, nil
}

func (m *memProductRepo) FindByPriceRange(ctx context.Context, minPrice, maxPrice float64, page repository.PageRequest) (*repository.ProductPage, error) {
	return &repository.ProductPage{}, nil
}

func (m *memProductRepo) FindAvailable(ctx context.Context, page repository.PageRequest) (*repository.ProductPage, error) {
	return &repository.ProductPage{}, nil
}

// newProductsApp wires the handler behind a stub principal and the same
// error mapping the real middleware applies.
func newProductsApp(repo *memProductRepo, principal *auth.Principal) *fiber.App {
	catalog := service.NewCatalogService(service.CatalogDependencies{ProductRepo: repo})
	handler := NewProductsHandler(catalog)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Code})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		auth.SetPrincipal(c, principal)
		return c.Next()
	})
	app.Post("/products/:id/stock", handler.AdjustStock)
	app.Patch("/products/:id", handler.Update)
	app.Delete("/products/:id", handler.Delete)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func supplierPrincipal(id string) *auth.Principal {
	return &auth.Principal{
		User: &domain.User{ID: id, Role: domain.RoleSupplier},
		Role: domain.RoleSupplier,
	}
}

func TestAdjustStock_OtherSuppliersProductForbidden(t *testing.T) {
	t.Parallel()

	repo := newMemProductRepo()
	repo.store["p1"] = &domain.Product{ID: "p1", SupplierID: "supplier-a", Name: "Eggs", Stock: 10}
	app := newProductsApp(repo, supplierPrincipal("supplier-b"))

	resp, err := app.Test(jsonRequest(http.MethodPost, "/products/p1/stock", `{"quantity":10}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 10, repo.store["p1"].Stock)
}

func TestAdjustStock_OwnerSucceeds(t *testing.T) {
	t.Parallel()

	repo := newMemProductRepo()
	repo.store["p1"] = &domain.Product{ID: "p1", SupplierID: "supplier-a", Name: "Eggs", Stock: 10}
	app := newProductsApp(repo, supplierPrincipal("supplier-a"))

	resp, err := app.Test(jsonRequest(http.MethodPost, "/products/p1/stock", `{"quantity":4}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 6, repo.store["p1"].Stock)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		Data struct {
			Stock int `json:"stock"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Equal(t, 6, body.Data.Stock)
}

func TestUpdate_OtherSuppliersProductForbidden(t *testing.T) {
	t.Parallel()

	repo := newMemProductRepo()
	repo.store["p1"] = &domain.Product{ID: "p1", SupplierID: "supplier-a", Name: "Eggs", Stock: 10}
	app := newProductsApp(repo, supplierPrincipal("supplier-b"))

	resp, err := app.Test(jsonRequest(http.MethodPatch, "/products/p1", `{"name":"Hijacked"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Eggs", repo.store["p1"].Name)
}

func TestDelete_OtherSuppliersProductForbidden(t *testing.T) {
	t.Parallel()

	repo := newMemProductRepo()
	repo.store["p1"] = &domain.Product{ID: "p1", SupplierID: "supplier-a", Name: "Eggs", Stock: 10}
	app := newProductsApp(repo, supplierPrincipal("supplier-b"))

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/products/p1", ""))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, repo.store, "p1")
}
