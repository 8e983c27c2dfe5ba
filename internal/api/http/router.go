package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-ticketing/internal/api/http/handlers"
	"github.com/spec-kit/event-ticketing/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Events  *handlers.EventsHandler
	Tickets *handlers.TicketsHandler
	Gateway *auth.Gateway
}

// RegisterRoutes wires HTTP routes. The gateway runs on every request and is
// fail-open; RequireAuthenticated / RequireAuthority are the gates that make
// a route protected.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gateway.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/password/change", auth.RequireAuthenticated(), cfg.Auth.ChangePassword)

	app.Get("/events", cfg.Events.List)
	app.Get("/events/:id", cfg.Events.Get)
	app.Post("/events", auth.RequireAuthority(auth.AuthorityPrefix+"ADMIN"), cfg.Events.Create)

	tickets := app.Group("/tickets", auth.RequireAuthenticated())
	tickets.Get("", cfg.Tickets.ListMine)
	tickets.Post("/purchase", cfg.Tickets.Purchase)
	tickets.Patch("/:id/spectator", cfg.Tickets.UpdateSpectator)
}
