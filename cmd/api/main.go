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

	"github.com/jhoicas/caja-pos-api/internal/application/auth"
	"github.com/jhoicas/caja-pos-api/internal/application/checkout"
	"github.com/jhoicas/caja-pos-api/internal/application/session"
	"github.com/jhoicas/caja-pos-api/internal/application/usecase"
	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
	"github.com/jhoicas/caja-pos-api/internal/infrastructure/gateway"
	infrapdf "github.com/jhoicas/caja-pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/caja-pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/caja-pos-api/internal/interfaces/http"
	"github.com/jhoicas/caja-pos-api/pkg/config"
	"github.com/jhoicas/caja-pos-api/pkg/logger"
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

	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	stateRepo := postgres.NewStateRepository(pool)

	taxRate, err := decimal.NewFromString(cfg.POS.TaxRate)
	if err != nil {
		log.Fatal().Err(err).Str("tax_rate", cfg.POS.TaxRate).Msg("POS_TAX_RATE inválido")
	}
	defaults := entity.StoreSettings{
		TaxRate:  taxRate,
		Currency: cfg.POS.Currency,
	}

	// La sesión de caja rehidrata carrito, transacciones, configuración y
	// cajero desde session_state; un estado corrupto degrada a defaults.
	posSession := session.New(stateRepo, log, defaults)

	confirmer := gateway.NewSimulatedConfirmer(cfg.POS.ConfirmDelayMS, log)
	recorder := checkout.NewRecorder(posSession, confirmer)

	catalogUC := usecase.NewCatalogUseCase(productRepo)
	cartUC := usecase.NewCartUseCase(posSession, productRepo)
	receiptGen := infrapdf.NewReceiptGenerator()
	transactionUC := usecase.NewTransactionUseCase(posSession, receiptGen, cfg.POS.StoreName)
	settingsUC := usecase.NewSettingsUseCase(posSession)
	authUC := auth.NewAuthUseCase(userRepo, posSession, auth.JWTConfig{
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
		Title:    "Caja POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:     catalogUC,
		CartUC:        cartUC,
		TransactionUC: transactionUC,
		SettingsUC:    settingsUC,
		Recorder:      recorder,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
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
