package domain

import "time"

// Product is the aggregate for catalog listings. Prices are per unit of
// UnitType ("kg", "dozen", ...); Stock is counted in the same unit.
type Product struct {
	ID            string
	SupplierID    string
	Name          string
	Category      string
	Description   string
	UnitPrice     float64
	UnitType      string
	Stock         int
	DeliveryRange string
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductPatch carries a partial update; nil fields leave the stored value
// untouched.
type ProductPatch struct {
	Name          *string
	Category      *string
	UnitPrice     *float64
	UnitType      *string
	Stock         *int
	DeliveryRange *string
	ImageURL      *string
	Description   *string
}
