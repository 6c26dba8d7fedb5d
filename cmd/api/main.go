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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermarket-pos/internal/application/auth"
	"github.com/jhoicas/supermarket-pos/internal/application/billing"
	"github.com/jhoicas/supermarket-pos/internal/application/catalog"
	"github.com/jhoicas/supermarket-pos/internal/application/reports"
	infrapdf "github.com/jhoicas/supermarket-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/supermarket-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/supermarket-pos/internal/infrastructure/rediscache"
	httpRouter "github.com/jhoicas/supermarket-pos/internal/interfaces/http"
	"github.com/jhoicas/supermarket-pos/pkg/config"
	"github.com/jhoicas/supermarket-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Marshaling de decimales como número JSON (sin comillas).
	decimal.MarshalJSONWithoutQuotes = true

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache del dashboard: opcional, solo si REDIS_ADDR está configurado.
	var dashboardCache reports.CachePort
	if cfg.Redis.Addr != "" {
		cache, err := rediscache.New(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, dashboard sin cache")
		} else {
			defer cache.Close()
			dashboardCache = cache
		}
	}

	productUC := catalog.NewProductUseCase(txRunner, productRepo, movementRepo)
	createBillUC := billing.NewCreateBillUseCase(txRunner, productRepo, billRepo)
	pdfGenerator := infrapdf.NewMarotoBillGenerator()
	billPDFUC := billing.NewPDFUseCase(billRepo, pdfGenerator, cfg.POS.StoreName)
	dashboardUC := reports.NewDashboardUseCase(reportRepo, dashboardCache, log)
	salesUC := reports.NewSalesReportUseCase(reportRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		CreateBill:  createBillUC,
		BillPDF:     billPDFUC,
		DashboardUC: dashboardUC,
		SalesUC:     salesUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
