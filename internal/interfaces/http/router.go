package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/caja-pos-api/internal/application/auth"
	"github.com/jhoicas/caja-pos-api/internal/application/checkout"
	"github.com/jhoicas/caja-pos-api/internal/application/usecase"
	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC     *usecase.CatalogUseCase
	CartUC        *usecase.CartUseCase
	TransactionUC *usecase.TransactionUseCase
	SettingsUC    *usecase.SettingsUseCase
	Recorder      *checkout.Recorder
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/logout", authHandler.Logout)

	// Catálogo de venta (protegido, solo lectura)
	products := protected.Group("/products")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products.Get("/", catalogHandler.List)
	products.Get("/:id", catalogHandler.GetByID)

	// Carrito (protegido)
	cart := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.CartUC)
	cart.Get("/", cartHandler.View)
	cart.Delete("/", cartHandler.Clear)
	cart.Post("/items", cartHandler.AddItem)
	cart.Put("/items/:productId", cartHandler.UpdateQuantity)
	cart.Delete("/items/:productId", cartHandler.RemoveItem)

	// Cierre de venta (protegido)
	checkoutHandler := NewCheckoutHandler(deps.Recorder, deps.AuthUC)
	protected.Post("/checkout", checkoutHandler.Commit)
	protected.Post("/checkout/abort", checkoutHandler.Abort)

	// Registro de transacciones (protegido)
	txs := protected.Group("/transactions")
	txHandler := NewTransactionHandler(deps.TransactionUC)
	txs.Get("/summary", txHandler.Summary)
	txs.Get("/", txHandler.List)
	txs.Get("/:id", txHandler.GetByID)
	txs.Get("/:id/receipt.pdf", txHandler.Receipt)

	// Configuración (lectura para todos; escritura solo admin)
	settings := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", RequireRole(entity.RoleAdmin), settingsHandler.Update)
}
