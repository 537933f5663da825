package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/juanjsts/game-catalog-service/internal/api/http/handlers"
	"github.com/juanjsts/game-catalog-service/internal/api/ws"
	"github.com/juanjsts/game-catalog-service/internal/auth"
	"github.com/juanjsts/game-catalog-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health             *handlers.HealthHandler
	Auth               *handlers.AuthHandler
	Users              *handlers.UsersHandler
	Platforms          *handlers.PlatformsHandler
	Players            *handlers.PlayersHandler
	Games              *handlers.GamesHandler
	Updates            *ws.Handler
	AuthMiddleware     *auth.Middleware
	LoginRatePerMinute int
}

// RegisterRoutes wires HTTP routes. The authentication middleware runs
// on every route; it only rejects requests that present an invalid
// bearer token, so public reads stay public.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	loginLimit := NewLoginRateLimit(cfg.LoginRatePerMinute)
	authGroup := app.Group("/auth")
	authGroup.Post("/signup", loginLimit, cfg.Auth.SignUp)
	authGroup.Post("/signin", loginLimit, cfg.Auth.SignIn)
	authGroup.Get("/me", auth.RequireAuthenticated(), cfg.Auth.Me)

	mutator := auth.RequireRole(domain.RoleUser, domain.RoleAdmin)
	admin := auth.RequireRole(domain.RoleAdmin)

	users := app.Group("/users")
	users.Put("/me/profile", auth.RequireAuthenticated(), cfg.Users.UpdateProfile)
	users.Delete("/me/profile", auth.RequireAuthenticated(), cfg.Users.DeleteProfile)
	users.Get("/", admin, cfg.Users.List)
	users.Get("/:id", admin, cfg.Users.Get)
	users.Put("/:id", admin, cfg.Users.Update)
	users.Delete("/:id", admin, cfg.Users.Delete)

	platforms := app.Group("/platforms")
	platforms.Get("/", cfg.Platforms.List)
	platforms.Get("/:id", cfg.Platforms.Get)
	platforms.Post("/", mutator, cfg.Platforms.Create)
	platforms.Put("/:id", mutator, cfg.Platforms.Update)
	platforms.Delete("/:id", mutator, cfg.Platforms.Delete)

	players := app.Group("/players")
	players.Get("/", cfg.Players.List)
	players.Get("/:id", cfg.Players.Get)
	players.Post("/", mutator, cfg.Players.Create)
	players.Put("/:id", mutator, cfg.Players.Update)
	players.Delete("/:id", mutator, cfg.Players.Delete)

	games := app.Group("/games")
	games.Get("/", cfg.Games.List)
	games.Get("/:id", cfg.Games.Get)
	games.Post("/", mutator, cfg.Games.Create)
	games.Put("/:id", mutator, cfg.Games.Update)
	games.Delete("/:id", mutator, cfg.Games.Delete)

	app.Get("/ws/updates", ws.Upgrade, cfg.Updates.Updates())
}
