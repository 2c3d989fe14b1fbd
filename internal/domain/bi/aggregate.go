package bi

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/cosecha-api/internal/domain"
	"github.com/jhoicas/cosecha-api/internal/domain/entity"
)

// AggregateInput snapshot inmutable sobre el que trabaja el agregador.
// ForecastShipments puede ir vacío; si trae envíos FORECAST se reconcilian
// contra Shipments antes de acumular entregas.
type AggregateInput struct {
	Orders            []entity.Order
	Shipments         []entity.Shipment
	ForecastShipments []entity.Shipment
	ProductCategories []entity.ProductCategory
	Depots            []entity.Depot
	Now               time.Time
}

// AggregateDemandAndDelivery pliega pedidos y envíos de una temporada en tres
// mapas: vendido por producto, entregado por producto×depósito y capacidad
// reservada por depósito.
//
// La puerta de soldForShipment/valueForShipment es deliberadamente más burda
// que el filtro de validez completo: solo descarta pedidos con ValidFrom
// estrictamente futuro. No unificar sin confirmar con producto.
func AggregateDemandAndDelivery(in AggregateInput) (*BIResult, error) {
	capacity := make(map[string]DepotCapacity, len(in.Depots))
	reservedUsers := make(map[string]map[string]struct{}, len(in.Depots))
	for _, d := range in.Depots {
		capacity[d.ID] = DepotCapacity{Capacity: d.Capacity}
		reservedUsers[d.ID] = make(map[string]struct{})
	}

	products := make(map[string]CatalogProduct)
	sold := make(map[string]Sold)
	for _, cat := range in.ProductCategories {
		for _, p := range cat.Products {
			decorated := CatalogProduct{Product: p, CategoryType: cat.Typ}
			decorated.Active = cat.Active && p.Active
			products[p.ID] = decorated
			sold[p.ID] = Sold{
				Quantity:  p.NormalizedQuantity(),
				Frequency: p.Frequency,
			}
		}
	}

	delivered := make(map[string]map[string]Delivered)
	ensureDelivered := func(productID, depotID string) (Delivered, error) {
		p, ok := products[productID]
		if !ok {
			return Delivered{}, fmt.Errorf("producto %s: %w", productID, domain.ErrReferentialIntegrity)
		}
		if delivered[productID] == nil {
			delivered[productID] = make(map[string]Delivered)
		}
		entry, ok := delivered[productID][depotID]
		if !ok {
			entry = Delivered{Frequency: p.Frequency}
		}
		return entry, nil
	}

	offers := decimal.Zero
	for _, order := range in.Orders {
		offers = offers.Add(order.Offer)

		// ValidFrom presente y en el pasado: el pedido cuenta para la próxima entrega
		forShipment := order.ValidFrom != nil && order.ValidFrom.Before(in.Now)

		for _, item := range order.Items {
			s, ok := sold[item.ProductID]
			if !ok {
				return nil, fmt.Errorf("producto %s: %w", item.ProductID, domain.ErrReferentialIntegrity)
			}
			normalized := item.Value.Mul(decimal.NewFromInt(int64(s.Frequency)))
			s.Sold = s.Sold.Add(normalized)
			if forShipment {
				s.SoldForShipment = s.SoldForShipment.Add(normalized)
			}
			sold[item.ProductID] = s

			entry, err := ensureDelivered(item.ProductID, order.DepotID)
			if err != nil {
				return nil, err
			}
			entry.Value = entry.Value.Add(item.Value)
			if forShipment {
				entry.ValueForShipment = entry.ValueForShipment.Add(item.Value)
			}
			delivered[item.ProductID][order.DepotID] = entry
		}

		if order.DepotID != "" && len(order.Items) > 0 {
			users, ok := reservedUsers[order.DepotID]
			if !ok {
				return nil, fmt.Errorf("depósito %s: %w", order.DepotID, domain.ErrReferentialIntegrity)
			}
			users[order.UserID] = struct{}{}
		}
	}

	merged, err := MergeShipmentWithForecast(in.Shipments, in.ForecastShipments)
	if err != nil {
		return nil, err
	}
	for _, item := range merged {
		entry, err := ensureDelivered(item.ProductID, item.DepotID)
		if err != nil {
			return nil, err
		}
		entry.Delivered = entry.Delivered.Add(item.Multiplicator)
		if item.Active {
			entry.ActuallyDelivered = entry.ActuallyDelivered.Add(item.Multiplicator)
		}
		entry.DeliveryCount++
		delivered[item.ProductID][item.DepotID] = entry
	}

	// La lista de usuarios se descarta: solo interesa cuántos son
	for depotID, users := range reservedUsers {
		c := capacity[depotID]
		c.Reserved = len(users)
		capacity[depotID] = c
	}

	return &BIResult{
		SoldByProductID:             sold,
		DeliveredByProductIDDepotID: delivered,
		CapacityByDepotID:           capacity,
		ProductsByID:                products,
		Offers:                      offers,
	}, nil
}
