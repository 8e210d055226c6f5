package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vendorbuddy/marketplace-service/internal/domain"
)

// RequireSupplier ensures the caller holds a supplier token.
func RequireSupplier() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Role != domain.RoleSupplier {
			return fiber.NewError(http.StatusForbidden, "supplier role required")
		}
		return c.Next()
	}
}

// RequireBuyer ensures the caller holds a buyer token.
func RequireBuyer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Role != domain.RoleBuyer {
			return fiber.NewError(http.StatusForbidden, "buyer role required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a principal is present, any role.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
