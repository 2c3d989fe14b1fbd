package bi

import (
	"fmt"
	"time"

	"github.com/jhoicas/cosecha-api/internal/application/dto"
	"github.com/jhoicas/cosecha-api/internal/domain"
	domainbi "github.com/jhoicas/cosecha-api/internal/domain/bi"
	"github.com/jhoicas/cosecha-api/internal/domain/entity"
	"github.com/jhoicas/cosecha-api/internal/domain/repository"
	"github.com/jhoicas/cosecha-api/pkg/logger"
)

// BIUseCase arma el snapshot de una temporada y ejecuta el agregador de
// demanda y entrega. El snapshot se carga completo al inicio y se trata como
// inmutable durante el cálculo; el caso de uso no persiste nada.
type BIUseCase struct {
	orders      repository.OrderRepository
	shipments   repository.ShipmentRepository
	catalog     repository.ProductCategoryRepository
	depots      repository.DepotRepository
	targetDates *TargetDateResolver
	log         *logger.Logger
	now         func() time.Time
}

// NewBIUseCase construye el caso de uso. now permite inyectar el reloj en tests; nil usa time.Now.
func NewBIUseCase(
	orders repository.OrderRepository,
	shipments repository.ShipmentRepository,
	catalog repository.ProductCategoryRepository,
	depots repository.DepotRepository,
	targetDates *TargetDateResolver,
	log *logger.Logger,
	now func() time.Time,
) *BIUseCase {
	if now == nil {
		now = time.Now
	}
	return &BIUseCase{
		orders:      orders,
		shipments:   shipments,
		catalog:     catalog,
		depots:      depots,
		targetDates: targetDates,
		log:         log,
		now:         now,
	}
}

// BIQuery parámetros de la consulta BI.
// OrderID acota el horizonte de envíos al ValidFrom de ese pedido (vista "qué
// se entregó antes de mi modificación"); IncludeForecast solo aplica en ese
// caso, igual que en la vista de pedido.
type BIQuery struct {
	ConfigID        string
	OrderID         string
	IncludeForecast bool
	DateOfInterest  *time.Time
}

// Get calcula la vista BI de la temporada.
func (uc *BIUseCase) Get(q BIQuery) (*dto.BIResponse, error) {
	targetDate, err := uc.resolveTargetDate(q.ConfigID, q.DateOfInterest)
	if err != nil {
		return nil, err
	}

	horizon := targetDate
	includeForecast := false
	if q.OrderID != "" {
		order, err := uc.orders.GetByID(q.OrderID)
		if err != nil {
			return nil, fmt.Errorf("cargar pedido %s: %w", q.OrderID, err)
		}
		if order == nil || order.RequisitionConfigID != q.ConfigID {
			return nil, fmt.Errorf("pedido %s en temporada %s: %w", q.OrderID, q.ConfigID, domain.ErrOrderNotFound)
		}
		if order.ValidFrom != nil {
			horizon = *order.ValidFrom
		}
		includeForecast = q.IncludeForecast
	}

	orders, err := uc.orders.ListByConfig(q.ConfigID, true)
	if err != nil {
		return nil, fmt.Errorf("cargar pedidos: %w", err)
	}
	categories, err := uc.catalog.ListByConfig(q.ConfigID)
	if err != nil {
		return nil, fmt.Errorf("cargar catálogo: %w", err)
	}
	depots, err := uc.depots.List()
	if err != nil {
		return nil, fmt.Errorf("cargar depósitos: %w", err)
	}
	shipments, err := uc.shipments.ListNormalBefore(q.ConfigID, horizon)
	if err != nil {
		return nil, fmt.Errorf("cargar envíos: %w", err)
	}
	var forecasts []entity.Shipment
	if includeForecast {
		forecasts, err = uc.shipments.ListForecast(q.ConfigID, horizon, uc.now())
		if err != nil {
			return nil, fmt.Errorf("cargar pronósticos: %w", err)
		}
	}

	result, err := domainbi.AggregateDemandAndDelivery(domainbi.AggregateInput{
		Orders:            selectCurrentOrders(orders, targetDate),
		Shipments:         shipments,
		ForecastShipments: forecasts,
		ProductCategories: categories,
		Depots:            depots,
		Now:               targetDate,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug().
		Str("config_id", q.ConfigID).
		Time("target_date", targetDate).
		Int("orders", len(orders)).
		Int("shipments", len(shipments)).
		Int("forecasts", len(forecasts)).
		Msg("BI calculado")

	return toBIResponse(result), nil
}

func (uc *BIUseCase) resolveTargetDate(configID string, dateOfInterest *time.Time) (time.Time, error) {
	if dateOfInterest != nil {
		return *dateOfInterest, nil
	}
	return uc.targetDates.Resolve(configID)
}

// selectCurrentOrders reduce el historial de modificaciones al pedido válido
// de cada usuario en at, conservando el orden de carga (userID, validFrom).
func selectCurrentOrders(orders []entity.Order, at time.Time) []entity.Order {
	byUser := domainbi.CurrentValidOrdersByUser(orders, at)
	selected := make([]entity.Order, 0, len(byUser))
	for _, o := range orders {
		if chosen, ok := byUser[o.UserID]; ok && chosen.ID == o.ID {
			selected = append(selected, o)
		}
	}
	return selected
}

func toBIResponse(r *domainbi.BIResult) *dto.BIResponse {
	sold := make(map[string]dto.SoldDTO, len(r.SoldByProductID))
	for id, s := range r.SoldByProductID {
		sold[id] = dto.SoldDTO{
			Quantity:        s.Quantity,
			Sold:            s.Sold,
			SoldForShipment: s.SoldForShipment,
			Frequency:       s.Frequency,
		}
	}
	delivered := make(map[string]map[string]dto.DeliveredDTO, len(r.DeliveredByProductIDDepotID))
	for productID, byDepot := range r.DeliveredByProductIDDepotID {
		delivered[productID] = make(map[string]dto.DeliveredDTO, len(byDepot))
		for depotID, d := range byDepot {
			delivered[productID][depotID] = dto.DeliveredDTO{
				Value:             d.Value,
				ValueForShipment:  d.ValueForShipment,
				Delivered:         d.Delivered,
				ActuallyDelivered: d.ActuallyDelivered,
				Frequency:         d.Frequency,
				DeliveryCount:     d.DeliveryCount,
			}
		}
	}
	capacity := make(map[string]dto.CapacityDTO, len(r.CapacityByDepotID))
	for depotID, c := range r.CapacityByDepotID {
		capacity[depotID] = dto.CapacityDTO{Capacity: c.Capacity, Reserved: c.Reserved}
	}
	products := make(map[string]dto.CatalogProductDTO, len(r.ProductsByID))
	for id, p := range r.ProductsByID {
		products[id] = dto.CatalogProductDTO{
			ID:           p.ID,
			Name:         p.Name,
			Quantity:     p.Quantity,
			Frequency:    p.Frequency,
			Unit:         string(p.Unit),
			Active:       p.Active,
			CategoryType: p.CategoryType,
		}
	}
	return &dto.BIResponse{
		SoldByProductID:             sold,
		DeliveredByProductIDDepotID: delivered,
		CapacityByDepotID:           capacity,
		ProductsByID:                products,
		Offers:                      r.Offers,
	}
}
