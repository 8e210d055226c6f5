package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vendorbuddy/marketplace-service/internal/api/http/handlers"
	"github.com/vendorbuddy/marketplace-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Products       *handlers.ProductsHandler
	Orders         *handlers.OrdersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Patch("/profile", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Users.UpdateProfile)

	products := app.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/search", cfg.Products.Search)
	products.Get("/:id", cfg.Products.Get)

	supplierProducts := products.Group("", cfg.AuthMiddleware.Handle, auth.RequireSupplier())
	supplierProducts.Post("/", cfg.Products.Create)
	supplierProducts.Patch("/:id", cfg.Products.Update)
	supplierProducts.Delete("/:id", cfg.Products.Delete)
	supplierProducts.Post("/:id/stock", cfg.Products.AdjustStock)

	app.Get("/suppliers/:id/products", cfg.Products.ListBySupplier)

	orders := app.Group("/orders", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	orders.Post("/", auth.RequireBuyer(), cfg.Orders.Place)
	orders.Get("/", auth.RequireBuyer(), cfg.Orders.ListMine)
	orders.Get("/incoming", auth.RequireSupplier(), cfg.Orders.ListIncoming)
	orders.Get("/:id", cfg.Orders.Get)
}
