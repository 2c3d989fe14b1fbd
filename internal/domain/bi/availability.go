package bi

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/cosecha-api/internal/domain"
	"github.com/jhoicas/cosecha-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// shipmentDelivery acumulado por (producto, envío) durante el recorrido.
type shipmentDelivery struct {
	delivered         decimal.Decimal
	weightedDelivered decimal.Decimal
	depotIDs          map[string]struct{}
}

// ComputeAvailabilityWeights produce por producto un peso msrpWeight en [0,1]
// que descuenta el precio de productos crónicamente subentregados respecto a su
// frecuencia planificada, junto con las estadísticas crudas para mostrar.
//
// La entrega de un producto se cuenta una vez por depósito por envío: dos
// pedidos del mismo depósito no duplican la contribución. El promedio se hace
// sobre los depósitos que realmente participan en cada envío.
//
// Un producto sin entrega alguna no aparece en los mapas de salida; el caller
// debe asumir peso 1.0 para productos ausentes. Un producto entregado con
// Frequency == 0 produce ErrZeroFrequency.
func ComputeAvailabilityWeights(
	orders []entity.Order,
	productCategories []entity.ProductCategory,
	shipments []entity.Shipment,
	forecastShipments []entity.Shipment,
	targetDate time.Time,
	includeForecast bool,
) (*AvailabilityWeights, error) {
	frequencyByProductID := make(map[string]int)
	for _, cat := range productCategories {
		for _, p := range cat.Products {
			frequencyByProductID[p.ID] = p.Frequency
		}
	}

	forecasts := forecastShipments
	if !includeForecast {
		forecasts = nil
	}
	merged, err := MergeShipmentWithForecast(shipments, forecasts)
	if err != nil {
		return nil, err
	}

	// los envíos llegan ya filtrados por el caller; el corte por fecha objetivo
	// se reaplica aquí para que la función sea correcta por sí sola
	effective := merged[:0:0]
	for _, item := range merged {
		if item.ValidFrom.Before(targetDate) {
			effective = append(effective, item)
		}
	}
	groups := groupByShipment(effective)

	state := make(map[string]map[string]*shipmentDelivery) // productID -> shipmentID -> acumulado
	for _, group := range groups {
		validOrders := CurrentValidOrdersByUser(orders, group.validFrom)
		for _, order := range validOrders {
			for _, orderItem := range order.Items {
				if _, ok := frequencyByProductID[orderItem.ProductID]; !ok {
					return nil, fmt.Errorf("producto %s: %w", orderItem.ProductID, domain.ErrReferentialIntegrity)
				}
				if state[orderItem.ProductID] == nil {
					state[orderItem.ProductID] = make(map[string]*shipmentDelivery)
				}
				current := state[orderItem.ProductID][group.id]
				if current == nil {
					current = &shipmentDelivery{depotIDs: make(map[string]struct{})}
					state[orderItem.ProductID][group.id] = current
				}
				if _, seen := current.depotIDs[order.DepotID]; seen {
					// la entrega de este depósito ya se consideró para este envío
					continue
				}
				current.depotIDs[order.DepotID] = struct{}{}
				current.delivered = current.delivered.Add(group.multiplicatorFor(orderItem.ProductID, order.DepotID))
				current.weightedDelivered = current.delivered.Div(decimal.NewFromInt(int64(len(current.depotIDs))))
			}
		}
	}

	availability := make(map[string]ProductAvailability, len(state))
	weights := make(map[string]decimal.Decimal, len(state))
	for productID, byShipment := range state {
		frequency := frequencyByProductID[productID]
		if frequency <= 0 {
			return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrZeroFrequency)
		}
		freqDec := decimal.NewFromInt(int64(frequency))

		weightedDelivered := decimal.Zero
		for _, item := range byShipment {
			weightedDelivered = weightedDelivered.Add(item.weightedDelivered)
		}

		deliveries := weightedDelivered.Div(hundred)
		weight := clamp01(decimal.NewFromInt(1).Sub(weightedDelivered.Div(freqDec.Mul(hundred))))

		availability[productID] = ProductAvailability{
			WeightedDelivered:  weightedDelivered,
			Frequency:          frequency,
			Deliveries:         deliveries,
			RoundedDeliveries:  deliveries.Round(0),
			DeliveryPercentage: weightedDelivered.Div(freqDec),
			MsrpWeight:         weight,
		}
		weights[productID] = weight
	}

	return &AvailabilityWeights{
		AvailabilityByProductID: availability,
		MsrpWeightsByProductID:  weights,
	}, nil
}

// shipmentGroup ítems efectivos de un envío, en orden ascendente de ValidFrom.
type shipmentGroup struct {
	id        string
	validFrom time.Time
	items     []MergedShipmentItem
}

// multiplicatorFor devuelve el multiplicador del ítem que empareja producto y
// depósito, o cero si el envío no cubrió ese depósito.
func (g shipmentGroup) multiplicatorFor(productID, depotID string) decimal.Decimal {
	for _, si := range g.items {
		if si.ProductID == productID && si.DepotID == depotID {
			return si.Multiplicator
		}
	}
	return decimal.Zero
}

func groupByShipment(items []MergedShipmentItem) []shipmentGroup {
	index := make(map[string]int)
	groups := make([]shipmentGroup, 0)
	for _, item := range items {
		i, ok := index[item.ShipmentID]
		if !ok {
			i = len(groups)
			index[item.ShipmentID] = i
			groups = append(groups, shipmentGroup{id: item.ShipmentID, validFrom: item.ValidFrom})
		}
		groups[i].items = append(groups[i].items, item)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].validFrom.Before(groups[b].validFrom)
	})
	return groups
}

func clamp01(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	one := decimal.NewFromInt(1)
	if d.GreaterThan(one) {
		return one
	}
	return d
}
