package dto

import (
	"time"

	"github.com/vendorbuddy/marketplace-service/internal/domain"
	"github.com/vendorbuddy/marketplace-service/internal/repository"
)

// ProductCreateRequest payload for new products.
type ProductCreateRequest struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	UnitPrice     float64 `json:"unit_price"`
	UnitType      string  `json:"unit_type"`
	Stock         int     `json:"stock"`
	DeliveryRange string  `json:"delivery_range"`
	ImageURL      string  `json:"image_url"`
}

// ProductUpdateRequest is a partial update; absent fields stay untouched.
type ProductUpdateRequest struct {
	Name          *string  `json:"name"`
	Category      *string  `json:"category"`
	UnitPrice     *float64 `json:"unit_price"`
	UnitType      *string  `json:"unit_type"`
	Stock         *int     `json:"stock"`
	DeliveryRange *string  `json:"delivery_range"`
	ImageURL      *string  `json:"image_url"`
	Description   *string  `json:"description"`
}

// Patch converts the request into a domain patch.
func (r ProductUpdateRequest) Patch() domain.ProductPatch {
	return domain.ProductPatch{
		Name:          r.Name,
		Category:      r.Category,
		UnitPrice:     r.UnitPrice,
		UnitType:      r.UnitType,
		Stock:         r.Stock,
		DeliveryRange: r.DeliveryRange,
		ImageURL:      r.ImageURL,
		Description:   r.Description,
	}
}

// StockAdjustRequest decrements stock by quantity; negative restocks.
type StockAdjustRequest struct {
	Quantity int `json:"quantity"`
}

// ProductResponse is the wire form of a product.
type ProductResponse struct {
	ID            string    `json:"id"`
	SupplierID    string    `json:"supplier_id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	UnitPrice     float64   `json:"unit_price"`
	UnitType      string    `json:"unit_type"`
	Stock         int       `json:"stock"`
	DeliveryRange string    `json:"delivery_range"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductPageResponse is one page of products plus pagination echo.
type ProductPageResponse struct {
	Items      []ProductResponse `json:"items"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
}

// NewProductResponse maps the domain entity.
func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SupplierID:    p.SupplierID,
		Name:          p.Name,
		Category:      p.Category,
		Description:   p.Description,
		UnitPrice:     p.UnitPrice,
		UnitType:      p.UnitType,
		Stock:         p.Stock,
		DeliveryRange: p.DeliveryRange,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// NewProductPageResponse maps a repository page.
func NewProductPageResponse(page *repository.ProductPage) ProductPageResponse {
	items := make([]ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, NewProductResponse(&page.Items[i]))
	}
	return ProductPageResponse{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		Size:       page.Size,
	}
}

// NewProductListResponse maps an unpaged product slice.
func NewProductListResponse(products []domain.Product) []ProductResponse {
	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, NewProductResponse(&products[i]))
	}
	return items
}
