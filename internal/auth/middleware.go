package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const principalKey = "auth_principal"

// Gateway extracts the bearer token, verifies it, and attaches the principal
// to the request context. It is deliberately fail-open: a missing or invalid
// token yields an anonymous request, never an HTTP error. Authorization
// checks downstream are the actual gate for protected routes.
type Gateway struct {
	verifier *Verifier
	logger   *zap.Logger
}

// NewGateway constructs the per-request authentication middleware.
func NewGateway(verifier *Verifier, logger *zap.Logger) *Gateway {
	return &Gateway{verifier: verifier, logger: logger}
}

// Handle populates the request-scoped principal when a valid bearer token is
// presented and continues unauthenticated otherwise.
func (g *Gateway) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Next()
	}

	principal, err := g.verifier.Verify(parts[1])
	if err != nil {
		g.logger.Debug("bearer token rejected, continuing anonymous",
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Next()
	}

	c.Locals(principalKey, &principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
