package http

import "github.com/gofiber/fiber/v2"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Inventory *InventoryHandler
	Warehouse *WarehouseHandler
	Auth      AuthConfig
}

// Router registra las rutas de la API bajo /api/v1. Todas requieren JWT o API key.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1", AuthMiddleware(deps.Auth))

	// Inventory (JWT o integración)
	inv := api.Group("/inventory")
	inv.Get("/stock", deps.Inventory.GetStock)
	inv.Get("/stock/report", deps.Inventory.StockReport)
	inv.Post("/stock", deps.Inventory.AdjustStock)
	inv.Post("/stock/bulk", deps.Inventory.BulkAdjustStock)
	inv.Get("/movements", deps.Inventory.GetMovements)

	// Warehouses: lectura para cualquier llamador, escritura solo admin
	warehouses := api.Group("/warehouses")
	warehouses.Get("/", deps.Warehouse.List)
	warehouses.Post("/", RequireRole(RoleAdmin), deps.Warehouse.Create)
	warehouses.Patch("/:id/status", RequireRole(RoleAdmin), deps.Warehouse.UpdateStatus)

	settings := api.Group("/settings")
	settings.Get("/default-warehouse", deps.Warehouse.GetDefault)
	settings.Put("/default-warehouse", RequireRole(RoleAdmin), deps.Warehouse.SetDefault)
}
