package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/vendorbuddy/marketplace-service/internal/api/dto"
	"github.com/vendorbuddy/marketplace-service/internal/auth"
	"github.com/vendorbuddy/marketplace-service/internal/domain"
	"github.com/vendorbuddy/marketplace-service/internal/service"
	apperrors "github.com/vendorbuddy/marketplace-service/pkg/util/errorutil"
)

// ProductsHandler exposes catalog endpoints.
type ProductsHandler struct {
	catalog *service.CatalogService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalog *service.CatalogService) *ProductsHandler {
	return &ProductsHandler{catalog: catalog}
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 20)
	sortBy := c.Query("sort_by", "name")
	sortDir := c.Query("sort_dir", "asc")

	result, err := h.catalog.List(c.Context(), page, size, sortBy, sortDir)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewProductPageResponse(result)})
}

// Search handles GET /products/search.
func (h *ProductsHandler) Search(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 20)
	term := c.Query("term")
	category := c.Query("category")

	minPrice, err := optionalFloat(c.Query("min_price"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid min_price")
	}
	maxPrice, err := optionalFloat(c.Query("max_price"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid max_price")
	}

	result, err := h.catalog.Search(c.Context(), term, minPrice, maxPrice, category, page, size)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewProductPageResponse(result)})
}

// Get handles GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.catalog.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// ListBySupplier handles GET /suppliers/:id/products.
func (h *ProductsHandler) ListBySupplier(c *fiber.Ctx) error {
	products, err := h.catalog.ListBySupplier(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewProductListResponse(products)})
}

// Create handles POST /products. Supplier only; ownership comes from the
// authenticated principal, not the payload.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ProductCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Category == "" {
		return fiber.NewError(http.StatusBadRequest, "name and category required")
	}
	if req.UnitPrice < 0 || req.Stock < 0 {
		return fiber.NewError(http.StatusBadRequest, "unit_price and stock must be non-negative")
	}

	product := &domain.Product{
		SupplierID:    principal.User.ID,
		Name:          req.Name,
		Category:      req.Category,
		Description:   req.Description,
		UnitPrice:     req.UnitPrice,
		UnitType:      req.UnitType,
		Stock:         req.Stock,
		DeliveryRange: req.DeliveryRange,
		ImageURL:      req.ImageURL,
	}
	created, err := h.catalog.Create(c.Context(), product)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProductResponse(created)})
}

// Update handles PATCH /products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	if err := h.requireOwnership(c); err != nil {
		return err
	}

	var req dto.ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.catalog.Update(c.Context(), c.Params("id"), req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(updated)})
}

// Delete handles DELETE /products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.requireOwnership(c); err != nil {
		return err
	}
	if err := h.catalog.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AdjustStock handles POST /products/:id/stock.
func (h *ProductsHandler) AdjustStock(c *fiber.Ctx) error {
	if err := h.requireOwnership(c); err != nil {
		return err
	}

	var req dto.StockAdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.catalog.AdjustStock(c.Context(), c.Params("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

func (h *ProductsHandler) requireOwnership(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	product, err := h.catalog.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if product.SupplierID != principal.User.ID {
		return apperrors.NewForbidden("product belongs to another supplier")
	}
	return nil
}

func optionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
