package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Orders  *OrderHandler
	Catalog *CatalogHandler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Orders
	orders := api.Group("/orders")
	orders.Post("/", deps.Orders.PlaceOrder)
	orders.Get("/:id", deps.Orders.GetOrder)

	// Catálogo y ledger
	api.Get("/products", deps.Catalog.ListProducts)
	api.Get("/ingredients", deps.Catalog.ListIngredients)
	api.Put("/ingredients/:id/restock", deps.Catalog.Restock)
}
