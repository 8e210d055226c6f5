package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vendorbuddy/marketplace-service/internal/domain"
	"github.com/vendorbuddy/marketplace-service/internal/events"
	"github.com/vendorbuddy/marketplace-service/internal/repository"
	apperrors "github.com/vendorbuddy/marketplace-service/pkg/util/errorutil"
)

// OrderLineInput is one requested product line.
type OrderLineInput struct {
	ProductID string
	Quantity  int
}

// OrderService places and lists orders. Stock is decremented per line
// through the catalog, so an order that would oversell fails with the
// catalog's insufficient-stock error.
type OrderService struct {
	orders     repository.OrderRepository
	catalog    *CatalogService
	dispatcher events.Dispatcher
}

// NewOrderService constructs the service.
func NewOrderService(orders repository.OrderRepository, catalog *CatalogService, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, catalog: catalog, dispatcher: dispatcher}
}

// PlaceOrder creates an order for a single supplier's products.
func (s *OrderService) PlaceOrder(ctx context.Context, buyerID string, lines []OrderLineInput) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, apperrors.NewValidationError("order requires at least one line", nil)
	}

	order := &domain.Order{
		BuyerID: buyerID,
		Status:  domain.OrderStatusPlaced,
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperrors.NewValidationError("line quantity must be positive",
				map[string]any{"product_id": line.ProductID})
		}
		product, err := s.catalog.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if order.SupplierID == "" {
			order.SupplierID = product.SupplierID
		} else if order.SupplierID != product.SupplierID {
			return nil, apperrors.NewValidationError("order lines must share one supplier",
				map[string]any{"product_id": line.ProductID})
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: product.UnitPrice,
		})
		order.Total += product.UnitPrice * float64(line.Quantity)
	}

	// Decrement after validation; a failure here can leave earlier lines
	// decremented, same as the persistence layer's own partial failures.
	for _, item := range order.Items {
		if _, err := s.catalog.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type: events.EventOrderPlaced,
		Payload: events.OrderPlacedPayload{
			OrderID:    order.ID,
			BuyerID:    order.BuyerID,
			SupplierID: order.SupplierID,
			Total:      order.Total,
			ItemCount:  len(order.Items),
		},
	})
	return order, nil
}

// GetOrder returns a single order visible to the requester. Orders that
// belong to other parties read as not found rather than forbidden, so the
// endpoint does not leak which order IDs exist.
func (s *OrderService) GetOrder(ctx context.Context, requesterID, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"id": orderID})
		}
		return nil, err
	}
	if order.BuyerID != requesterID && order.SupplierID != requesterID {
		return nil, apperrors.NewNotFound("order", map[string]any{"id": orderID})
	}
	return order, nil
}

// ListForBuyer returns the buyer's orders, newest first.
func (s *OrderService) ListForBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	return s.orders.ListByBuyer(ctx, buyerID)
}

// ListForSupplier returns orders addressed to the supplier, newest first.
func (s *OrderService) ListForSupplier(ctx context.Context, supplierID string) ([]domain.Order, error) {
	return s.orders.ListBySupplier(ctx, supplierID)
}

func (s *OrderService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
