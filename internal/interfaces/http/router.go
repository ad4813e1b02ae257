package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/rasiva-api/internal/application/auth"
	"github.com/jhoicas/rasiva-api/internal/application/dispatch"
	"github.com/jhoicas/rasiva-api/internal/application/inventory"
	"github.com/jhoicas/rasiva-api/internal/application/purchasing"
	"github.com/jhoicas/rasiva-api/internal/application/quotation"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/infrastructure/cache"
	"github.com/jhoicas/rasiva-api/internal/infrastructure/metrics"
	"github.com/jhoicas/rasiva-api/internal/infrastructure/storage"
	"github.com/jhoicas/rasiva-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ItemUC       *inventory.ItemUseCase
	CotizacionUC *quotation.CotizacionUseCase
	PurchaseUC   *purchasing.PurchaseUseCase
	GuideUC      *dispatch.GuideUseCase
	Idempotency  *cache.IdempotencyStore // opcional
	Metrics      *metrics.Metrics        // opcional
	Log          *logger.Logger
	JWTSecret    string
	UploadsDir   string // vacío = no se sirven archivos
	LoginPerMin  int
	Production   bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Use(RequestLogger(log))
	app.Use(SecureHeaders(deps.Production))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.UploadsDir != "" {
		app.Static(storage.URLPrefix, deps.UploadsDir, fiber.Static{ByteRange: true})
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", LoginLimiter(deps.LoginPerMin), authHandler.Login)

	// Todo lo demás requiere Bearer Token
	protected := api.Group("", AuthMiddleware(deps.JWTSecret), Idempotency(deps.Idempotency, log))
	protected.Get("/auth/me", authHandler.Me)

	stockRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Cotizaciones, notas de venta y borradores
	cot := protected.Group("/cotizaciones")
	cotHandler := NewCotizacionHandler(deps.CotizacionUC, log)
	cot.Post("/", cotHandler.CreateOrUpdate)
	cot.Post("/borrador", cotHandler.SaveDraft)
	cot.Post("/upload-pdf", cotHandler.UploadPDF)
	cot.Post("/desde-borrador/:id", cotHandler.PromoteDraft)
	cot.Post("/:id/convertir-a-nota", cotHandler.Convert)
	cot.Put("/:id/anular", cotHandler.Cancel)
	cot.Put("/:id", cotHandler.Update)
	cot.Get("/", cotHandler.List)
	cot.Get("/:id/pdf", cotHandler.DownloadPDF)
	cot.Get("/:id/ganancia", cotHandler.Profit)
	cot.Get("/:id", cotHandler.Get)
	cot.Delete("/:id", cotHandler.Delete)

	// Ítems; /buscar antes de /:id
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, log)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.FindOrCreate)
	items.Get("/buscar", itemHandler.Search)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", stockRoles, itemHandler.Delete)

	// Facturas de compra
	facturas := protected.Group("/facturas")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, log)
	facturas.Post("/", stockRoles, purchaseHandler.Create)
	facturas.Get("/", purchaseHandler.List)
	facturas.Get("/:id", purchaseHandler.GetByID)

	// Guías de despacho
	guias := protected.Group("/guias")
	guideHandler := NewGuideHandler(deps.GuideUC, log)
	guias.Post("/", stockRoles, guideHandler.Create)
	guias.Get("/nota/:notaId", guideHandler.ListByNote)
	guias.Get("/:id", guideHandler.GetByID)
	guias.Delete("/:id", stockRoles, guideHandler.Delete)
}
