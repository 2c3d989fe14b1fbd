package http

import (
	"github.com/gofiber/fiber/v2"
	appbi "github.com/jhoicas/cosecha-api/internal/application/bi"
	"github.com/jhoicas/cosecha-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BIUC           *appbi.BIUseCase
	AvailabilityUC *appbi.AvailabilityUseCase
	MergedUC       *appbi.MergedShipmentsUseCase
	Log            *logger.Logger
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// La vista BI y los pesos de disponibilidad son internos de la cooperativa
	biHandler := NewBIHandler(deps.BIUC, deps.AvailabilityUC, deps.Log)
	staff := api.Group("/bi", RequireRole("admin", "empleado"))
	staff.Get("/", biHandler.Get)
	staff.Get("/availability", biHandler.Availability)

	shipmentHandler := NewShipmentHandler(deps.MergedUC, deps.Log)
	api.Get("/shipments/merged", shipmentHandler.ListMerged)
}
