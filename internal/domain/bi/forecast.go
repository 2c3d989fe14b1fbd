package bi

import (
	"fmt"

	"github.com/jhoicas/cosecha-api/internal/domain"
	"github.com/jhoicas/cosecha-api/internal/domain/entity"
)

// Tope de rondas de reconciliación. Con ítems finitos y el conjunto de usados
// creciendo de forma monótona nunca debería alcanzarse; si se alcanza hay un
// defecto en el predicado de emparejamiento y se reporta ErrReconcileLoop.
const maxReconcileRounds = 1000

// MergeShipmentWithForecast descuenta de los ítems de pronóstico las cantidades
// que ya fueron entregadas por envíos NORMAL dentro de la ventana del
// pronóstico, para el mismo producto y depósito. Devuelve los ítems entregados
// seguidos de los restos de pronóstico ajustados.
//
// El emparejamiento es voraz y sensible al orden: cada ítem de pronóstico toma
// el primer ítem entregado aún no usado, en el orden original de la colección,
// y cada ítem entregado satisface a lo sumo un ítem de pronóstico, aunque su
// magnitud pudiera cubrir más de uno. Cambiar ese desempate cambia qué
// pronósticos quedan supersedidos; no "arreglarlo".
func MergeShipmentWithForecast(shipments, forecastShipments []entity.Shipment) ([]MergedShipmentItem, error) {
	shippedItems := flattenShipments(shipments, false)
	forecastItems := flattenShipments(forecastShipments, true)

	if len(forecastItems) == 0 {
		return shippedItems, nil
	}

	used := make([]bool, len(shippedItems))

	adjust := func(items []MergedShipmentItem) ([]MergedShipmentItem, bool) {
		changed := false
		remaining := make([]MergedShipmentItem, 0, len(items))
		for _, fi := range items {
			idx := findMatchingShipped(shippedItems, used, fi)
			if idx >= 0 {
				used[idx] = true
				fi.Multiplicator = fi.Multiplicator.Sub(shippedItems[idx].Multiplicator)
				changed = true
			}
			if fi.Multiplicator.IsPositive() {
				remaining = append(remaining, fi)
			}
		}
		return remaining, changed
	}

	adjusted := forecastItems
	for round := 0; ; round++ {
		if round > maxReconcileRounds {
			return nil, fmt.Errorf("tras %d rondas: %w", round, domain.ErrReconcileLoop)
		}
		remaining, changed := adjust(adjusted)
		if !changed {
			break
		}
		adjusted = remaining
	}

	return append(shippedItems, adjusted...), nil
}

// findMatchingShipped busca el primer ítem entregado sin usar del mismo
// producto y depósito cuyo ValidFrom cae estrictamente dentro de la ventana
// [ValidFrom, ValidTo) del pronóstico.
func findMatchingShipped(shipped []MergedShipmentItem, used []bool, fi MergedShipmentItem) int {
	if fi.ValidTo == nil {
		return -1
	}
	for i, si := range shipped {
		if used[i] {
			continue
		}
		if si.DepotID != fi.DepotID || si.ProductID != fi.ProductID {
			continue
		}
		if fi.ValidFrom.Before(si.ValidFrom) && si.ValidFrom.Before(*fi.ValidTo) {
			return i
		}
	}
	return -1
}

// flattenShipments aplana los envíos en un ítem por (producto, depósito) por
// envío, etiquetado con la validez del envío padre. Los DRAFT se ignoran.
func flattenShipments(shipments []entity.Shipment, forecast bool) []MergedShipmentItem {
	items := make([]MergedShipmentItem, 0, len(shipments))
	for _, s := range shipments {
		if s.Type == entity.ShipmentTypeDraft {
			continue
		}
		for _, si := range s.Items {
			items = append(items, MergedShipmentItem{
				ShipmentID:    s.ID,
				ProductID:     si.ProductID,
				DepotID:       si.DepotID,
				Multiplicator: si.Multiplicator,
				Description:   si.Description,
				ValidFrom:     s.ValidFrom,
				ValidTo:       s.ValidTo,
				Active:        s.Active,
				Forecast:      forecast,
			})
		}
	}
	return items
}
