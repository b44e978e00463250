package http

import (
	"github.com/gofiber/fiber/v2"

	appauth "github.com/bellinicahuanadevelopment/gestor-textil/internal/application/auth"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/application/clients"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/application/inventory"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/application/orders"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/auth"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *appauth.UseCase
	InventoryUC *inventory.UseCase
	ClientUC    *clients.UseCase
	OrderUC     *orders.UseCase
	OrderPDFUC  *orders.PDFUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/me", authHandler.Me)

	// Inventario y productos (protegido). El alta de productos toca el
	// catálogo compartido: solo manager o admin.
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	protected.Get("/inventario/resumen", inventoryHandler.Summary)
	protected.Post("/inventario/movimientos", inventoryHandler.RegisterMovement)
	protected.Post("/productos", RequireRole(auth.RoleManager, auth.RoleAdmin), inventoryHandler.CreateProduct)
	protected.Get("/productos/:id/movimientos", inventoryHandler.Movements)

	// Clientes (protegido)
	clientHandler := NewClientHandler(deps.ClientUC)
	clientGroup := protected.Group("/clientes")
	clientGroup.Get("/", clientHandler.Search)
	clientGroup.Post("/", clientHandler.Create)
	clientGroup.Get("/:id", clientHandler.GetByID)

	// Pedidos (protegido)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderPDFUC)
	orderGroup := protected.Group("/pedidos")
	orderGroup.Post("/start", orderHandler.Start)
	orderGroup.Get("/", orderHandler.List)
	orderGroup.Get("/:id", orderHandler.GetByID)
	orderGroup.Delete("/:id", orderHandler.Delete)
	orderGroup.Get("/:id/pdf", orderHandler.PDF)
	orderGroup.Post("/:id/items", orderHandler.UpsertItem)
	orderGroup.Put("/:id/items/:itemId", orderHandler.UpdateItem)
	orderGroup.Delete("/:id/items/:itemId", orderHandler.DeleteItem)
	orderGroup.Post("/:id/submit", orderHandler.Submit)
	orderGroup.Post("/:id/approve", orderHandler.Approve)
	orderGroup.Post("/:id/cancel", orderHandler.Cancel)
}
