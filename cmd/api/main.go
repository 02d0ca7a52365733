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
	"github.com/jhoicas/stock-ledger/internal/application/auth"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	infrapdf "github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	movRepo := postgres.NewStockMovementRepository(pool)
	levelRepo := postgres.NewStockLevelRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor de stock: ledger → saldo → resolución de bodega → ajuste → carga masiva
	invLog := log.Component("inventory")
	balance := inventory.NewBalanceCalculator(movRepo, levelRepo)
	resolver := inventory.NewWarehouseResolver(settingsRepo, warehouseRepo)
	adjustUC := inventory.NewAdjustStockUseCase(txRunner, movRepo, productRepo, resolver, balance, invLog)
	bulkUC := inventory.NewBulkAdjustStockUseCase(adjustUC, invLog)
	historyUC := inventory.NewMovementHistoryUseCase(movRepo)
	reportUC := inventory.NewStockReportUseCase(balance, infrapdf.NewMarotoStockReportGenerator())

	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, settingsRepo)
	storeAuthUC := auth.NewStoreAuthUseCase(storeRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // carga masiva y reporte PDF
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Inventory: httpRouter.NewInventoryHandler(adjustUC, bulkUC, balance, historyUC, reportUC, cfg.Inventory),
		Warehouse: httpRouter.NewWarehouseHandler(warehouseUC, cfg.Inventory.MaxPageSize),
		Auth: httpRouter.AuthConfig{
			JWTSecret: cfg.JWT.Secret,
			JWTIssuer: cfg.JWT.Issuer,
			Stores:    storeAuthUC,
		},
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
