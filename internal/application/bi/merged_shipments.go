package bi

import (
	"fmt"
	"time"

	"github.com/jhoicas/cosecha-api/internal/application/dto"
	domainbi "github.com/jhoicas/cosecha-api/internal/domain/bi"
	"github.com/jhoicas/cosecha-api/internal/domain/repository"
)

// MergedShipmentsUseCase vista de ítems de entrega con los pronósticos ya
// reconciliados contra las entregas reales, para los listados de envíos.
type MergedShipmentsUseCase struct {
	shipments   repository.ShipmentRepository
	targetDates *TargetDateResolver
	now         func() time.Time
}

// NewMergedShipmentsUseCase construye el caso de uso. now permite inyectar el reloj en tests; nil usa time.Now.
func NewMergedShipmentsUseCase(shipments repository.ShipmentRepository, targetDates *TargetDateResolver, now func() time.Time) *MergedShipmentsUseCase {
	if now == nil {
		now = time.Now
	}
	return &MergedShipmentsUseCase{shipments: shipments, targetDates: targetDates, now: now}
}

// List devuelve los ítems entregados más los restos de pronóstico de la temporada.
func (uc *MergedShipmentsUseCase) List(configID string) ([]dto.MergedShipmentItemDTO, error) {
	targetDate, err := uc.targetDates.Resolve(configID)
	if err != nil {
		return nil, err
	}
	shipments, err := uc.shipments.ListNormalBefore(configID, targetDate)
	if err != nil {
		return nil, fmt.Errorf("cargar envíos: %w", err)
	}
	forecasts, err := uc.shipments.ListForecast(configID, targetDate, uc.now())
	if err != nil {
		return nil, fmt.Errorf("cargar pronósticos: %w", err)
	}

	merged, err := domainbi.MergeShipmentWithForecast(shipments, forecasts)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MergedShipmentItemDTO, 0, len(merged))
	for _, item := range merged {
		items = append(items, dto.MergedShipmentItemDTO{
			ShipmentID:    item.ShipmentID,
			ProductID:     item.ProductID,
			DepotID:       item.DepotID,
			Multiplicator: item.Multiplicator,
			Description:   item.Description,
			ValidFrom:     item.ValidFrom,
			ValidTo:       item.ValidTo,
			Forecast:      item.Forecast,
		})
	}
	return items, nil
}
