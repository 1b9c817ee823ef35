package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-tracker/internal/application/catalog"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// AppConfig opciones del servidor HTTP.
type AppConfig struct {
	Name         string
	DocsEnabled  bool
	DocsFilePath string
	Logger       zerolog.Logger
}

// NewApp crea la app Fiber con manejo de errores de dominio, recover, log de peticiones y Swagger.
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler(cfg.Logger),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(cfg.Logger))
	app.Use(ActorMiddleware())

	// Swagger UI: http://localhost:<port>/docs
	if cfg.DocsEnabled {
		if _, err := os.Stat(cfg.DocsFilePath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.DocsFilePath,
				Path:     "docs",
				Title:    "Inventory Tracker API",
			}))
		} else {
			cfg.Logger.Warn().Str("file", cfg.DocsFilePath).Msg("swagger.json no encontrado, /docs deshabilitado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog *catalog.Service
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	productHandler := NewProductHandler(deps.Catalog)
	inventoryHandler := NewInventoryHandler(deps.Catalog)
	supplierHandler := NewSupplierHandler(deps.Catalog)

	// Formulario simple de ítems
	items := api.Group("/items")
	items.Post("/", productHandler.CreateItem)
	items.Get("/", productHandler.List)
	items.Delete("/:id", productHandler.Deactivate)

	products := api.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)
	products.Post("/:id/activate", productHandler.Activate)
	products.Put("/:id/prices", productHandler.UpdatePrices)
	products.Get("/:id/price-history", productHandler.PriceHistory)
	products.Get("/:id/movements", productHandler.Movements)
	products.Get("/:id/reconciliation", productHandler.Reconciliation)
	products.Get("/:id/serials", productHandler.Serials)
	products.Post("/:id/suppliers", supplierHandler.Link)
	products.Get("/:id/suppliers", supplierHandler.ListForProduct)

	invGroup := api.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	api.Patch("/serials/:serial", inventoryHandler.UpdateSerialStatus)

	suppliers := api.Group("/suppliers")
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)

	for path, kind := range map[string]entity.ReferenceKind{
		"/categories": entity.ReferenceCategory,
		"/brands":     entity.ReferenceBrand,
		"/locations":  entity.ReferenceLocation,
		"/units":      entity.ReferenceUnit,
	} {
		h := NewReferenceHandler(deps.Catalog, kind)
		g := api.Group(path)
		g.Post("/", h.Create)
		g.Get("/", h.List)
	}

	api.Post("/users", NewUserHandler(deps.Catalog).Create)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Catalog)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/value", reportHandler.Value)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/overview", reportHandler.Overview)
}
