package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	_ "github.com/jhoicas/rasiva-api/docs"
	"github.com/jhoicas/rasiva-api/internal/application/auth"
	"github.com/jhoicas/rasiva-api/internal/application/dispatch"
	"github.com/jhoicas/rasiva-api/internal/application/inventory"
	"github.com/jhoicas/rasiva-api/internal/application/purchasing"
	"github.com/jhoicas/rasiva-api/internal/application/quotation"
	"github.com/jhoicas/rasiva-api/internal/infrastructure/cache"
	"github.com/jhoicas/rasiva-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/rasiva-api/internal/infrastructure/pdf"
	"github.com/jhoicas/rasiva-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/rasiva-api/internal/interfaces/http"
	"github.com/jhoicas/rasiva-api/pkg/config"
	"github.com/jhoicas/rasiva-api/pkg/logger"
)

const (
	searchCacheTTL  = 10 * time.Minute
	idempotencyTTL  = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
	swaggerSpecPath = "./docs/swagger.json"
)

// @title        Rasiva API
// @version      1.0
// @description  Cotizaciones, notas de venta, inventario, facturas de compra y guías de despacho.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("storage", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer be.close()

	if err := seedCounters(ctx, be.counters, cfg.Numbering); err != nil {
		log.Fatal().Err(err).Msg("correlativos")
	}

	// Redis es opcional: sin él no hay caché de búsqueda ni idempotencia.
	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("REDIS_URL inválida")
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis no responde; se continúa sin caché")
		}
	}
	searchCache := cache.NewSearchCache(rdb, searchCacheTTL)
	idem := cache.NewIdempotencyStore(rdb, idempotencyTTL)

	files := storage.NewLocalFileStore(cfg.Storage.UploadsDir, cfg.HTTP.PublicBaseURL)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.Issuer{
		Name:    cfg.Company.Name,
		RUT:     cfg.Company.RUT,
		Giro:    cfg.Company.Giro,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
		Bank:    cfg.Company.Bank,
	})
	m := metrics.New()

	authUC := auth.NewAuthUseCase(be.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	itemUC := inventory.NewItemUseCase(be.tx, be.items, searchCache, log)
	cotizacionUC := quotation.NewCotizacionUseCase(quotation.Deps{
		TxRunner: be.tx,
		Docs:     be.docs,
		Items:    be.items,
		PDF:      pdfGenerator,
		Files:    files,
		Metrics:  m,
		Log:      log,
	})
	purchaseUC := purchasing.NewPurchaseUseCase(be.tx, be.invoices, searchCache, log)
	guideUC := dispatch.NewGuideUseCase(be.tx, be.guides, pdfGenerator, files, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimitMB << 20,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerSpecPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpecPath,
			Path:     "docs",
			Title:    "Rasiva API",
		}))
	} else {
		log.Warn().Str("path", swaggerSpecPath).Msg("sin especificación swagger; /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ItemUC:       itemUC,
		CotizacionUC: cotizacionUC,
		PurchaseUC:   purchaseUC,
		GuideUC:      guideUC,
		Idempotency:  idem,
		Metrics:      m,
		Log:          log,
		JWTSecret:    cfg.JWT.Secret,
		UploadsDir:   files.Root(),
		LoginPerMin:  cfg.HTTP.LoginPerMin,
		Production:   cfg.App.Env == "production",
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor HTTP finalizado")
	}
	log.Info().Msg("aplicación detenida")
}
