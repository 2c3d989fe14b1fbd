package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	appbi "github.com/jhoicas/cosecha-api/internal/application/bi"
	"github.com/jhoicas/cosecha-api/internal/application/dto"
	"github.com/jhoicas/cosecha-api/internal/domain"
	"github.com/jhoicas/cosecha-api/pkg/logger"
)

// BIHandler maneja las consultas de demanda/entrega y disponibilidad (protegido).
type BIHandler struct {
	biUC           *appbi.BIUseCase
	availabilityUC *appbi.AvailabilityUseCase
	log            *logger.Logger
}

// NewBIHandler construye el handler.
func NewBIHandler(biUC *appbi.BIUseCase, availabilityUC *appbi.AvailabilityUseCase, log *logger.Logger) *BIHandler {
	return &BIHandler{biUC: biUC, availabilityUC: availabilityUC, log: log}
}

// Get devuelve la vista agregada de demanda, entrega y capacidad de la temporada.
// Query: configId (requerido), orderId, includeForecast, dateOfInterest (RFC 3339).
func (h *BIHandler) Get(c *fiber.Ctx) error {
	configID := c.Query("configId")
	if configID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "configId es requerido"})
	}
	dateOfInterest, err := parseDateQuery(c, "dateOfInterest")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dateOfInterest inválido (RFC 3339)"})
	}

	out, err := h.biUC.Get(appbi.BIQuery{
		ConfigID:        configID,
		OrderID:         c.Query("orderId"),
		IncludeForecast: c.QueryBool("includeForecast", false),
		DateOfInterest:  dateOfInterest,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Availability devuelve los pesos de disponibilidad por producto.
// Query: configId (requerido), dateOfInterest (RFC 3339).
func (h *BIHandler) Availability(c *fiber.Ctx) error {
	configID := c.Query("configId")
	if configID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "configId es requerido"})
	}
	dateOfInterest, err := parseDateQuery(c, "dateOfInterest")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dateOfInterest inválido (RFC 3339)"})
	}

	out, err := h.availabilityUC.Get(configID, dateOfInterest, true)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *BIHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrConfigNotFound), errors.Is(err, domain.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrReferentialIntegrity):
		h.log.Error().Err(err).Msg("snapshot inconsistente")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "DATA_INTEGRITY", Message: err.Error()})
	case errors.Is(err, domain.ErrZeroFrequency):
		h.log.Error().Err(err).Msg("producto con frecuencia cero en catálogo")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "ZERO_FREQUENCY", Message: err.Error()})
	case errors.Is(err, domain.ErrReconcileLoop):
		h.log.Error().Err(err).Msg("invariante de reconciliación violado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	default:
		h.log.Error().Err(err).Msg("error en consulta BI")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
