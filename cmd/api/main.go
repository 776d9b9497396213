// @title        Inventario Recetas API
// @version      1.0
// @description  Libro de insumos, recetas y ventas por propietario.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/Inventario-recetas/docs"
	appanalytics "github.com/jhoicas/Inventario-recetas/internal/application/analytics"
	"github.com/jhoicas/Inventario-recetas/internal/application/auth"
	"github.com/jhoicas/Inventario-recetas/internal/application/inventory"
	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
	"github.com/jhoicas/Inventario-recetas/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-recetas/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-recetas/internal/interfaces/http"
	"github.com/jhoicas/Inventario-recetas/pkg/config"
	"github.com/jhoicas/Inventario-recetas/pkg/logger"
	"github.com/jhoicas/Inventario-recetas/pkg/tracing"
)

// backend agrupa los adaptadores de almacenamiento elegidos por configuración.
type backend struct {
	txRunner  inventory.TxRunner
	stock     repository.StockItemRepository
	products  repository.ProductRepository
	txs       repository.TransactionRepository
	users     repository.UserRepository
	analytics repository.AnalyticsRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar tracing")
	}

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer be.close()

	stockUC := inventory.NewStockLedgerUseCase(be.txRunner, be.stock, log)
	catalogUC := inventory.NewRecipeCatalogUseCase(be.txRunner, be.products, log)
	engine := inventory.NewTransactionEngine(be.txRunner, be.txs, log)
	weeklySalesUC := appanalytics.NewWeeklySalesUseCase(be.analytics)
	authUC := auth.NewAuthUseCase(be.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger.json no encontrado, UI deshabilitada")
	}
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		StockUC:       stockUC,
		CatalogUC:     catalogUC,
		Engine:        engine,
		WeeklySalesUC: weeklySalesUC,
		JWTSecret:     cfg.JWT.Secret,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cerrar exportador de trazas")
	}

	log.Info().Msg("aplicación detenida")
}

// openBackend construye los repositorios según STORAGE_DRIVER.
func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		store := memory.NewStore()
		return &backend{
			txRunner:  memory.NewTxRunner(store),
			stock:     memory.NewStockItemRepository(store),
			products:  memory.NewProductRepository(store),
			txs:       memory.NewTransactionRepository(store),
			users:     memory.NewUserRepository(store),
			analytics: memory.NewAnalyticsRepository(store),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}
	return &backend{
		txRunner:  postgres.NewTxRunner(pool),
		stock:     postgres.NewStockItemRepository(pool),
		products:  postgres.NewProductRepository(pool),
		txs:       postgres.NewTransactionRepository(pool),
		users:     postgres.NewUserRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		close:     pool.Close,
	}, nil
}
