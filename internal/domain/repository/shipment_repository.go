package repository

import (
	"time"

	"github.com/jhoicas/cosecha-api/internal/domain/entity"
)

// ShipmentRepository define el puerto de persistencia para Shipment (DIP).
type ShipmentRepository interface {
	// ListNormalBefore devuelve los envíos NORMAL activos con validFrom < before,
	// con sus ítems, ordenados por validFrom ascendente.
	ListNormalBefore(configID string, before time.Time) ([]entity.Shipment, error)
	// ListForecast devuelve los envíos FORECAST activos con validFrom < before
	// cuya ventana sigue abierta (validTo > after).
	ListForecast(configID string, before, after time.Time) ([]entity.Shipment, error)
}
