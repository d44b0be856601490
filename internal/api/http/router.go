package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/careops/hospitalops/internal/api/http/handlers"
	"github.com/careops/hospitalops/internal/auth"
	"github.com/careops/hospitalops/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Units          *handlers.UnitsHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Equipment      *handlers.EquipmentHandler
	Purchases      *handlers.PurchasesHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Every route past /auth/login is scoped
// by the session's unit; write routes add role guards on top.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Unit selection precedes login.
	app.Get("/units", cfg.Units.List)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Users.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Users.Me)
	authProtected.Post("/register", auth.RequireRole(domain.RoleAdmin), cfg.Users.Register)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	api.Post("/units", auth.RequireRole(domain.RoleAdmin), cfg.Units.Create)

	tickets := api.Group("/tickets")
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Get("/:id/actions", cfg.Tickets.Actions)
	tickets.Post("/:id/transition", cfg.Tickets.Transition)
	tickets.Post("/:id/action", cfg.Tickets.ApplyAction)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Post("/:id/assign", auth.RequireManager(), cfg.Tickets.Assign)

	api.Get("/users/assignable", auth.RequireManager(), cfg.Users.Assignable)

	equipment := api.Group("/equipment")
	equipment.Get("/", cfg.Equipment.List)
	equipment.Get("/:id", cfg.Equipment.Get)
	equipment.Post("/", auth.RequireManager(), cfg.Equipment.Create)
	equipment.Put("/:id", auth.RequireManager(), cfg.Equipment.Update)
	equipment.Delete("/:id", auth.RequireManager(), cfg.Equipment.Delete)

	purchases := api.Group("/purchases", auth.RequireManager())
	purchases.Post("/", cfg.Purchases.Create)
	purchases.Get("/", cfg.Purchases.List)
	purchases.Get("/bills/:billNumber", cfg.Purchases.Bill)

	api.Get("/dashboard/stats", cfg.Dashboard.Stats)
}
