package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RequireAuthenticated rejects anonymous requests. This, not the gateway, is
// where a missing or invalid token becomes a client-visible failure.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusForbidden, "authentication required")
		}
		return c.Next()
	}
}

// RequireAuthority ensures the principal carries at least one of the allowed
// authorities (ROLE_-prefixed strings).
func RequireAuthority(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusForbidden, "authentication required")
		}
		if len(allowed) == 0 {
			return c.Next()
		}
		for _, authority := range allowed {
			if principal.HasAuthority(authority) {
				return c.Next()
			}
		}
		return fiber.NewError(http.StatusForbidden, "insufficient authority")
	}
}
