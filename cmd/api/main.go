package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appbi "github.com/jhoicas/cosecha-api/internal/application/bi"
	"github.com/jhoicas/cosecha-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cosecha-api/internal/interfaces/http"
	"github.com/jhoicas/cosecha-api/pkg/config"
	"github.com/jhoicas/cosecha-api/pkg/logger"
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

	orderRepo := postgres.NewOrderRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	catalogRepo := postgres.NewProductCategoryRepository(pool)
	depotRepo := postgres.NewDepotRepository(pool)
	configRepo := postgres.NewRequisitionConfigRepository(pool)

	targetDates := appbi.NewTargetDateResolver(configRepo, nil)
	biUC := appbi.NewBIUseCase(orderRepo, shipmentRepo, catalogRepo, depotRepo, targetDates, log, nil)
	availabilityUC := appbi.NewAvailabilityUseCase(orderRepo, shipmentRepo, catalogRepo, targetDates, log, nil)
	mergedUC := appbi.NewMergedShipmentsUseCase(shipmentRepo, targetDates, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		BIUC:           biUC,
		AvailabilityUC: availabilityUC,
		MergedUC:       mergedUC,
		Log:            log,
		JWTSecret:      cfg.JWT.Secret,
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
