package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vendorbuddy/marketplace-service/internal/domain"
	"github.com/vendorbuddy/marketplace-service/internal/events"
	"github.com/vendorbuddy/marketplace-service/internal/repository"
	apperrors "github.com/vendorbuddy/marketplace-service/pkg/util/errorutil"
)

// ProductCache is the read-through cache consumed by the catalog. A nil
// implementation is tolerated everywhere.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, bool)
	Set(ctx context.Context, product *domain.Product)
	Invalidate(ctx context.Context, id string)
}

// CatalogService mediates product reads and writes, applying the business
// rules the repository does not know about. Writes follow a plain
// load-then-save pattern with no version check, so concurrent writers
// against the same product can lose updates.
type CatalogService struct {
	products   repository.ProductRepository
	cache      ProductCache
	dispatcher events.Dispatcher
}

// CatalogDependencies bundles collaborators for the catalog service.
type CatalogDependencies struct {
	ProductRepo repository.ProductRepository
	Cache       ProductCache
	Dispatcher  events.Dispatcher
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		products:   deps.ProductRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// List returns one page of the whole catalog. Sort direction defaults to
// ascending unless sortDir equals "desc" case-insensitively; the sort field
// is passed through and left for the repository to reject.
func (s *CatalogService) List(ctx context.Context, page, size int, sortField, sortDir string) (*repository.ProductPage, error) {
	sort := repository.SortSpec{
		Field:      sortField,
		Descending: strings.EqualFold(sortDir, "desc"),
	}
	return s.products.FindAll(ctx, repository.PageRequest{Page: page, Size: size}, sort)
}

// Search selects exactly one filter combination by fixed precedence:
// term (with or without a price range), then category (with or without a
// price range), then price range alone, then in-stock products. A price
// range only participates when both bounds are present.
func (s *CatalogService) Search(ctx context.Context, term string, minPrice, maxPrice *float64, category string, page, size int) (*repository.ProductPage, error) {
	pageReq := repository.PageRequest{Page: page, Size: size}
	hasRange := minPrice != nil && maxPrice != nil
	term = strings.TrimSpace(term)
	category = strings.TrimSpace(category)

	switch {
	case term != "" && hasRange:
		return s.products.SearchTextWithPriceRange(ctx, term, *minPrice, *maxPrice, pageReq)
	case term != "":
		return s.products.SearchText(ctx, term, pageReq)
	case category != "" && hasRange:
		return s.products.FindByCategoryAndPriceRange(ctx, category, *minPrice, *maxPrice, pageReq)
	case category != "":
		return s.products.FindByCategory(ctx, category, pageReq)
	case hasRange:
		return s.products.FindByPriceRange(ctx, *minPrice, *maxPrice, pageReq)
	default:
		return s.products.FindAvailable(ctx, pageReq)
	}
}

// Create stamps timestamps and persists a new product.
func (s *CatalogService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	s.cacheSet(ctx, product)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventProductCreated,
		ProductID: product.ID,
		Payload: events.ProductCreatedPayload{
			SupplierID: product.SupplierID,
			Name:       product.Name,
			Category:   product.Category,
			UnitPrice:  product.UnitPrice,
			Stock:      product.Stock,
		},
	})
	return product, nil
}

// Update merges the non-nil patch fields into the stored product. Fields
// left nil are untouched; a stock value supplied here is written as-is,
// without the decrement guard AdjustStock applies.
func (s *CatalogService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.UnitPrice != nil {
		product.UnitPrice = *patch.UnitPrice
	}
	if patch.UnitType != nil {
		product.UnitType = *patch.UnitType
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	if patch.DeliveryRange != nil {
		product.DeliveryRange = *patch.DeliveryRange
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}

	product.UpdatedAt = time.Now()
	if err := s.products.Save(ctx, product); err != nil {
		return nil, s.mapNotFound(err, id)
	}
	s.cacheInvalidate(ctx, id)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventProductUpdated,
		ProductID: product.ID,
		Payload: events.ProductUpdatedPayload{
			SupplierID: product.SupplierID,
			Name:       product.Name,
		},
	})
	return product, nil
}

// Delete removes a product after an existence check.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	exists, err := s.products.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFound("product", map[string]any{"id": id})
	}
	if err := s.products.DeleteByID(ctx, id); err != nil {
		return s.mapNotFound(err, id)
	}
	s.cacheInvalidate(ctx, id)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventProductDeleted,
		ProductID: id,
		Payload:   events.ProductDeletedPayload{},
	})
	return nil
}

// GetByID fetches a single product, consulting the cache first.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache != nil {
		if product, ok := s.cache.Get(ctx, id); ok {
			return product, nil
		}
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err, id)
	}
	s.cacheSet(ctx, product)
	return product, nil
}

// ListBySupplier returns every product owned by the supplier, unpaged.
func (s *CatalogService) ListBySupplier(ctx context.Context, supplierID string) ([]domain.Product, error) {
	return s.products.FindBySupplierID(ctx, supplierID)
}

// AdjustStock decrements stock by quantity, failing before any write when
// the result would go negative. A negative quantity restocks.
func (s *CatalogService) AdjustStock(ctx context.Context, id string, quantity int) (*domain.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newStock := product.Stock - quantity
	if newStock < 0 {
		return nil, apperrors.NewInsufficientStock(id, product.Stock, quantity)
	}

	oldStock := product.Stock
	product.Stock = newStock
	product.UpdatedAt = time.Now()
	if err := s.products.Save(ctx, product); err != nil {
		return nil, s.mapNotFound(err, id)
	}
	s.cacheInvalidate(ctx, id)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventStockAdjusted,
		ProductID: product.ID,
		Payload: events.StockAdjustedPayload{
			SupplierID: product.SupplierID,
			Name:       product.Name,
			OldStock:   oldStock,
			NewStock:   newStock,
		},
	})
	return product, nil
}

func (s *CatalogService) mapNotFound(err error, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("product", map[string]any{"id": id})
	}
	return err
}

func (s *CatalogService) cacheSet(ctx context.Context, product *domain.Product) {
	if s.cache != nil {
		s.cache.Set(ctx, product)
	}
}

func (s *CatalogService) cacheInvalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
}

func (s *CatalogService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
