package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bluevelvet-api/internal/application/auth"
	"github.com/jhoicas/bluevelvet-api/internal/application/usecase"
	"github.com/jhoicas/bluevelvet-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC   *auth.AuthUseCase
	Users    *usecase.UserUseCase
	Category *usecase.CategoryUseCase
	Export   *usecase.CategoryExportUseCase
	JWT      JWTConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.JWT)
	authGroup.Get("/", authHandler.Index)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWT.Secret), NewUserHandler(deps.Users).Me)

	categories := api.Group("/categories")
	h := NewCategoryHandler(deps.Category, deps.Export)

	// Lectura (pública). Las rutas fijas van antes de /:id.
	categories.Get("/", h.List)
	categories.Get("/sorted", h.Sorted)
	categories.Get("/top-level", h.TopLevel)
	categories.Get("/hierarchy", h.Hierarchy)
	categories.Get("/search", h.Search)
	categories.Get("/enabled", h.Enabled)
	categories.Get("/public", h.Public)
	categories.Get("/public/hierarchy", h.PublicHierarchy)
	categories.Get("/export", h.Export)
	categories.Get("/exists", h.Exists)
	categories.Get("/by-name", h.ByName)
	categories.Get("/:id", h.GetByID)
	categories.Get("/:id/with-children", h.WithChildren)
	categories.Get("/:id/subcategories", h.Subcategories)
	categories.Get("/:id/has-children", h.HasChildren)

	// Mutaciones (Bearer Token + rol admin)
	admin := []fiber.Handler{AuthMiddleware(deps.JWT.Secret), RequireRole(entity.RoleAdmin)}
	categories.Post("/reset", append(admin, h.Reset)...)
	categories.Post("/", append(admin, h.Create)...)
	categories.Put("/:id", append(admin, h.Update)...)
	categories.Delete("/:id", append(admin, h.Delete)...)
}
