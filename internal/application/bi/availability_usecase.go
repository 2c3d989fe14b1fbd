package bi

import (
	"fmt"
	"time"

	"github.com/jhoicas/cosecha-api/internal/application/dto"
	domainbi "github.com/jhoicas/cosecha-api/internal/domain/bi"
	"github.com/jhoicas/cosecha-api/internal/domain/entity"
	"github.com/jhoicas/cosecha-api/internal/domain/repository"
	"github.com/jhoicas/cosecha-api/pkg/logger"
)

// AvailabilityUseCase calcula los pesos de disponibilidad (msrpWeight) por
// producto hasta la fecha objetivo. Cada invocación es independiente y sin
// efectos secundarios: las migraciones que lo llaman una vez por pedido
// histórico no comparten estado entre llamadas.
type AvailabilityUseCase struct {
	orders      repository.OrderRepository
	shipments   repository.ShipmentRepository
	catalog     repository.ProductCategoryRepository
	targetDates *TargetDateResolver
	log         *logger.Logger
	now         func() time.Time
}

// NewAvailabilityUseCase construye el caso de uso. now permite inyectar el reloj en tests; nil usa time.Now.
func NewAvailabilityUseCase(
	orders repository.OrderRepository,
	shipments repository.ShipmentRepository,
	catalog repository.ProductCategoryRepository,
	targetDates *TargetDateResolver,
	log *logger.Logger,
	now func() time.Time,
) *AvailabilityUseCase {
	if now == nil {
		now = time.Now
	}
	return &AvailabilityUseCase{
		orders:      orders,
		shipments:   shipments,
		catalog:     catalog,
		targetDates: targetDates,
		log:         log,
		now:         now,
	}
}

// Get calcula los pesos de disponibilidad de la temporada.
func (uc *AvailabilityUseCase) Get(configID string, dateOfInterest *time.Time, includeForecast bool) (*dto.AvailabilityResponse, error) {
	var targetDate time.Time
	if dateOfInterest != nil {
		targetDate = *dateOfInterest
	} else {
		var err error
		targetDate, err = uc.targetDates.Resolve(configID)
		if err != nil {
			return nil, err
		}
	}

	orders, err := uc.orders.ListByConfig(configID, true)
	if err != nil {
		return nil, fmt.Errorf("cargar pedidos: %w", err)
	}
	categories, err := uc.catalog.ListByConfig(configID)
	if err != nil {
		return nil, fmt.Errorf("cargar catálogo: %w", err)
	}
	shipments, err := uc.shipments.ListNormalBefore(configID, targetDate)
	if err != nil {
		return nil, fmt.Errorf("cargar envíos: %w", err)
	}
	var forecasts []entity.Shipment
	if includeForecast {
		forecasts, err = uc.shipments.ListForecast(configID, targetDate, uc.now())
		if err != nil {
			return nil, fmt.Errorf("cargar pronósticos: %w", err)
		}
	}

	weights, err := domainbi.ComputeAvailabilityWeights(orders, categories, shipments, forecasts, targetDate, includeForecast)
	if err != nil {
		return nil, err
	}

	uc.log.Debug().
		Str("config_id", configID).
		Time("target_date", targetDate).
		Int("products", len(weights.AvailabilityByProductID)).
		Msg("pesos de disponibilidad calculados")

	return toAvailabilityResponse(weights), nil
}

func toAvailabilityResponse(w *domainbi.AvailabilityWeights) *dto.AvailabilityResponse {
	availability := make(map[string]dto.ProductAvailabilityDTO, len(w.AvailabilityByProductID))
	for productID, a := range w.AvailabilityByProductID {
		availability[productID] = dto.ProductAvailabilityDTO{
			WeightedDelivered:  a.WeightedDelivered,
			Frequency:          a.Frequency,
			Deliveries:         a.Deliveries,
			RoundedDeliveries:  a.RoundedDeliveries,
			DeliveryPercentage: a.DeliveryPercentage,
			MsrpWeight:         a.MsrpWeight,
		}
	}
	return &dto.AvailabilityResponse{
		AvailabilityByProductID: availability,
		MsrpWeightsByProductID:  w.MsrpWeightsByProductID,
	}
}
