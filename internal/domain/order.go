package domain

import "time"

// OrderStatus enumerates lifecycle states for orders.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderItem is a single product line within an order. UnitPrice is a copy
// of the product price at placement time.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice float64
}

// Order is the aggregate for a buyer's purchase against one supplier.
type Order struct {
	ID         string
	BuyerID    string
	SupplierID string
	Status     OrderStatus
	Total      float64
	Items      []OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
