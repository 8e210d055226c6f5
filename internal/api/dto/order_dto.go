package dto

import (
	"time"

	"github.com/vendorbuddy/marketplace-service/internal/domain"
)

// OrderLineRequest is one requested product line.
type OrderLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderCreateRequest payload for order placement.
type OrderCreateRequest struct {
	Items []OrderLineRequest `json:"items"`
}

// OrderItemResponse is the wire form of an order line.
type OrderItemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderResponse is the wire form of an order.
type OrderResponse struct {
	ID         string              `json:"id"`
	BuyerID    string              `json:"buyer_id"`
	SupplierID string              `json:"supplier_id"`
	Status     string              `json:"status"`
	Total      float64             `json:"total"`
	Items      []OrderItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// NewOrderResponse maps the domain entity.
func NewOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return OrderResponse{
		ID:         order.ID,
		BuyerID:    order.BuyerID,
		SupplierID: order.SupplierID,
		Status:     string(order.Status),
		Total:      order.Total,
		Items:      items,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

// NewOrderListResponse maps a slice of orders.
func NewOrderListResponse(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}
