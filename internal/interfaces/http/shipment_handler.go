package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	appbi "github.com/jhoicas/cosecha-api/internal/application/bi"
	"github.com/jhoicas/cosecha-api/internal/application/dto"
	"github.com/jhoicas/cosecha-api/internal/domain"
	"github.com/jhoicas/cosecha-api/pkg/logger"
)

// ShipmentHandler maneja los listados de envíos reconciliados (protegido).
type ShipmentHandler struct {
	mergedUC *appbi.MergedShipmentsUseCase
	log      *logger.Logger
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(mergedUC *appbi.MergedShipmentsUseCase, log *logger.Logger) *ShipmentHandler {
	return &ShipmentHandler{mergedUC: mergedUC, log: log}
}

// ListMerged devuelve los ítems entregados más los restos de pronóstico.
// Query: configId (requerido).
func (h *ShipmentHandler) ListMerged(c *fiber.Ctx) error {
	configID := c.Query("configId")
	if configID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "configId es requerido"})
	}
	items, err := h.mergedUC.List(configID)
	if err != nil {
		if errors.Is(err, domain.ErrConfigNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		h.log.Error().Err(err).Msg("error listando envíos reconciliados")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}
