package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProductCreated EventType = "product_created"
	EventProductUpdated EventType = "product_updated"
	EventProductDeleted EventType = "product_deleted"
	EventStockAdjusted  EventType = "stock_adjusted"
	EventOrderPlaced    EventType = "order_placed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ProductID string      `json:"product_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ProductCreatedPayload payload.
type ProductCreatedPayload struct {
	SupplierID string  `json:"supplier_id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	UnitPrice  float64 `json:"unit_price"`
	Stock      int     `json:"stock"`
}

// ProductUpdatedPayload payload.
type ProductUpdatedPayload struct {
	SupplierID string `json:"supplier_id"`
	Name       string `json:"name"`
}

// ProductDeletedPayload payload.
type ProductDeletedPayload struct {
	SupplierID string `json:"supplier_id"`
}

// StockAdjustedPayload payload.
type StockAdjustedPayload struct {
	SupplierID string `json:"supplier_id"`
	Name       string `json:"name"`
	OldStock   int    `json:"old_stock"`
	NewStock   int    `json:"new_stock"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	OrderID    string  `json:"order_id"`
	BuyerID    string  `json:"buyer_id"`
	SupplierID string  `json:"supplier_id"`
	Total      float64 `json:"total"`
	ItemCount  int     `json:"item_count"`
}
