package server

import (
	"inventario-backend/internal/audit"
	"inventario-backend/internal/auth"
	"inventario-backend/internal/catalog"
	"inventario-backend/internal/ledger"
	"inventario-backend/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

type Deps struct {
	Catalog *catalog.Service
	Ledger  *ledger.Service
	Audit   *audit.Service // nil ise /api/audit-logs kaydedilmez

	JWTSecret   string // boşsa mutasyon uçları açık
	CORSOrigins string
	Log         *zap.Logger
}

// NewApp builds the Fiber app with every route registered.
func NewApp(d Deps, cfg fiber.Config) *fiber.App {
	cfg.ErrorHandler = errorHandler(d.Log)
	app := fiber.New(cfg)

	app.Use(cors.New(cors.Config{
		AllowOrigins: d.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + logger.RequestIDHeader,
		AllowMethods: "GET,POST,OPTIONS",
	}))
	app.Use(logger.Middleware(d.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "UP"})
	})

	api := app.Group("/api")

	// Katalog sorguları herkese açık
	api.Get("/consultar_productos_gsheet", catalog.ListProductsHandler(d.Catalog, d.Log))
	api.Get("/consultar_stock/:codigo", catalog.GetStockHandler(d.Catalog, d.Log))

	guard := auth.Passthrough()
	if d.JWTSecret != "" {
		guard = auth.JWTMiddleware(d.JWTSecret)
	}

	mutations := map[string]fiber.Handler{
		"/registrar_entrega":  ledger.RegisterDeliveryHandler(d.Ledger, d.Log),
		"/actualizar_pago":    ledger.UpdatePaymentHandler(d.Ledger, d.Log),
		"/actualizar_entrega": ledger.UpdateDeliveryHandler(d.Ledger, d.Log),
	}
	for path, h := range mutations {
		api.Post(path, guard, h)
		api.All(path, ledger.MethodNotAllowedHandler())
	}

	if d.Audit != nil {
		auditRoutes := api.Group("/audit-logs")
		if d.JWTSecret != "" {
			auditRoutes.Use(guard, auth.RequireRole(auth.RoleAdmin))
		}
		auditRoutes.Get("", audit.ListAuditLogsHandler(d.Audit, d.Log))
	}

	return app
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{
				"error": e.Message,
			})
		}
		log.Error("beklenmeyen hata",
			zap.String("path", c.Path()),
			zap.String("request_id", logger.RequestID(c)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error inesperado del servidor",
		})
	}
}
