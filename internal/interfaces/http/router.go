package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Inventario-recetas/internal/application/analytics"
	"github.com/jhoicas/Inventario-recetas/internal/application/auth"
	"github.com/jhoicas/Inventario-recetas/internal/application/inventory"
	"github.com/jhoicas/Inventario-recetas/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	StockUC       *inventory.StockLedgerUseCase
	CatalogUC     *inventory.RecipeCatalogUseCase
	Engine        *inventory.TransactionEngine
	WeeklySalesUC *appanalytics.WeeklySalesUseCase
	JWTSecret     string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api", RequestLogger(log.Named("http")))

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Insumos
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.List)
	stock.Post("/", stockHandler.Create)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Put("/:id", stockHandler.Update)
	stock.Delete("/:id", stockHandler.Delete)
	stock.Post("/:id/adjust", stockHandler.Adjust)

	// Productos y recetas
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/recipe", productHandler.GetRecipe)
	products.Put("/:id/recipe", productHandler.ReplaceRecipe)

	// Ventas
	transactions := protected.Group("/transactions")
	txHandler := NewTransactionHandler(deps.Engine)
	transactions.Get("/", txHandler.List)
	transactions.Post("/", txHandler.Create)
	transactions.Get("/:id", txHandler.GetByID)
	transactions.Delete("/:id", txHandler.Delete)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.WeeklySalesUC)
	dashboard.Get("/weekly-sales", dashboardHandler.WeeklySales)
}
