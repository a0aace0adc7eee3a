// Package web sirve las páginas estáticas de la tienda: login, registro y panel de categorías.
// Las páginas solo consumen la API REST; no hay render del lado del servidor.
package web

import (
	"embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed pages/*.html
var pages embed.FS

// Register monta las rutas de páginas en app.
func Register(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/login", fiber.StatusFound)
	})
	app.Get("/login", page("pages/login.html"))
	app.Get("/register", page("pages/register.html"))
	app.Get("/dashboard", page("pages/dashboard.html"))
}

func page(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := pages.ReadFile(name)
		if err != nil {
			return fiber.ErrNotFound
		}
		c.Type("html", "utf-8")
		return c.Send(body)
	}
}
