package bi_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cosecha-api/internal/domain"
	"github.com/jhoicas/cosecha-api/internal/domain/bi"
	"github.com/jhoicas/cosecha-api/internal/domain/entity"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func catalogoDePrueba() []entity.ProductCategory {
	return []entity.ProductCategory{
		{
			ID: "c1", Typ: "SELFGROWN", Active: true,
			Products: []entity.Product{
				{ID: "p1", Name: "Zanahorias", Quantity: dec(2), Frequency: 20, Unit: entity.UnitWeight, Active: true},
				{ID: "p2", Name: "Huevos", Quantity: dec(5), Frequency: 10, Unit: entity.UnitPiece, Active: true},
			},
		},
		{
			ID: "c2", Typ: "COOPERATION", Active: false,
			Products: []entity.Product{
				{ID: "p3", Name: "Queso", Quantity: dec(1), Frequency: 4, Unit: entity.UnitWeight, Active: true},
			},
		},
	}
}

func depositosDePrueba() []entity.Depot {
	cap1 := 10
	return []entity.Depot{
		{ID: "d1", Name: "Centro", Capacity: &cap1},
		{ID: "d2", Name: "Norte", Capacity: nil},
	}
}

// Un ítem con value=5 de un producto con frequency=20 aporta exactamente 100
// a la cantidad vendida normalizada.
func TestAggregate_VentaNormalizadaPorFrecuencia(t *testing.T) {
	orders := []entity.Order{
		{ID: "o1", UserID: "u1", DepotID: "d1", ValidFrom: fechaPtr("2025-04-01"),
			Items: []entity.OrderItem{{ProductID: "p1", Value: dec(5)}}},
	}

	res, err := bi.AggregateDemandAndDelivery(bi.AggregateInput{
		Orders:            orders,
		ProductCategories: catalogoDePrueba(),
		Depots:            depositosDePrueba(),
		Now:               fecha("2025-05-10"),
	})
	require.NoError(t, err)

	assert.Equal(t, "100", res.SoldByProductID["p1"].Sold.String())
	assert.Equal(t, "2000", res.SoldByProductID["p1"].Quantity.String(), "WEIGHT se normaliza a gramos (×1000)")
	assert.Equal(t, "5", res.SoldByProductID["p2"].Quantity.String(), "PIECE no se escala")
}

// soldForShipment solo cuenta pedidos con ValidFrom presente y en el pasado;
// es deliberadamente más burdo que el filtro de validez completo.
func TestAggregate_PuertaSoldForShipment(t *testing.T) {
	now := fecha("2025-05-10")
	orders := []entity.Order{
		{ID: "o1", UserID: "u1", DepotID: "d1", ValidFrom: fechaPtr("2025-04-01"),
			Items: []entity.OrderItem{{ProductID: "p1", Value: dec(1)}}},
		{ID: "o2", UserID: "u2", DepotID: "d1", ValidFrom: fechaPtr("2025-06-01"), // futuro
			Items: []entity.OrderItem{{ProductID: "p1", Value: dec(1)}}},
		{ID: "o3", UserID: "u3", DepotID: "d1", // sin ValidFrom
			Items: []entity.OrderItem{{ProductID: "p1", Value: dec(1)}}},
	}

	res, err := bi.AggregateDemandAndDelivery(bi.AggregateInput{
		Orders:            orders,
		ProductCategories: catalogoDePrueba(),
		Depots:            depositosDePrueba(),
		Now:               now,
	})
	require.NoError(t, err)

	assert.Equal(t, "60", res.SoldByProductID["p1"].Sold.String(), "los tres pedidos cuentan como vendido")
	assert.Equal(t, "20", res.SoldByProductID["p1"].SoldForShipment.String(), "solo el pedido con ValidFrom pasado")
	assert.Equal(t, "3", res.DeliveredByProductIDDepotID["p1"]["d1"].Value.String())
	assert.Equal(t, "1", res.DeliveredByProductIDDepotID["p1"]["d1"].ValueForShipment.String())
}

// La capacidad reservada cuenta miembros distintos, no pedidos ni ítems.
func TestAggregate_ReservaCuentaUsuariosNoItems(t *testing.T) {
	orders := []entity.Order{
		{ID: "o1", UserID: "u1", DepotID: "d1", ValidFrom: fechaPtr("2025-04-01"),
			Items: []entity.OrderItem{{ProductID: "p1", Value: dec(1)}, {ProductID: "p2", Value: dec(2)}}},
		{ID: "o2", UserID: "u1", DepotID: "d1", ValidFrom: fechaPtr("2025-05-01"),
			Items: []entity.OrderItem{{ProductID: "p1", Value: dec(2)}}},
		{ID: "o3", UserID: "u2", DepotID: "d1", ValidFrom: fechaPtr("2025-04-01"),
			Items: []entity.OrderItem{{ProductID: "p2", Value: dec(1)}}},
		{ID: "o4", UserID: "u3", DepotID: "d2", ValidFrom: fechaPtr("2025-04-01"),
			Items: nil}, // pedido vacío: no ocupa plaza
	}

	res, err := bi.AggregateDemandAndDelivery(bi.AggregateInput{
		Orders:            orders,
		ProductCategories: catalogoDePrueba(),
		Depots:            depositosDePrueba(),
		Now:               fecha("2025-05-10"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.CapacityByDepotID["d1"].Reserved, "u1 dos veces cuenta una sola plaza")
	assert.Equal(t, 0, res.CapacityByDepotID["d2"].Reserved)
	require.NotNil(t, res.CapacityByDepotID["d1"].Capacity)
	assert.Equal(t, 10, *res.CapacityByDepotID["d1"].Capacity)
	assert.Nil(t, res.CapacityByDepotID["d2"].Capacity, "depósito sin límite")
}

// delivered acumula todos los envíos; actuallyDelivered solo los activos.
func TestAggregate_EntregadoVsRealmenteEntregado(t *testing.T) {
	shipments := []entity.Shipment{
		{ID: "s1", Type: entity.ShipmentTypeNormal, ValidFrom: fecha("2025-05-01"), Active: true,
			Items: []entity.ShipmentItem{{ProductID: "p1", DepotID: "d1", Multiplicator: dec(100)}}},
		{ID: "s2", Type: entity.ShipmentTypeNormal, ValidFrom: fecha("2025-05-08"), Active: false,
			Items: []entity.ShipmentItem{{ProductID: "p1", DepotID: "d1", Multiplicator: dec(50)}}},
	}

	res, err := bi.AggregateDemandAndDelivery(bi.AggregateInput{
		Shipments:         shipments,
		ProductCategories: catalogoDePrueba(),
		Depots:            depositosDePrueba(),
		Now:               fecha("2025-05-10"),
	})
	require.NoError(t, err)

	entry := res.DeliveredByProductIDDepotID["p1"]["d1"]
	assert.Equal(t, "150", entry.Delivered.String())
	assert.Equal(t, "100", entry.ActuallyDelivered.String())
	assert.Equal(t, 2, entry.DeliveryCount)
}

// El catálogo decora cada producto con la actividad combinada de su categoría.
func TestAggregate_CatalogoDecorado(t *testing.T) {
	res, err := bi.AggregateDemandAndDelivery(bi.AggregateInput{
		ProductCategories: catalogoDePrueba(),
		Depots:            depositosDePrueba(),
		Now:               fecha("2025-05-10"),
	})
	require.NoError(t, err)

	assert.True(t, res.ProductsByID["p1"].Active)
	assert.False(t, res.ProductsByID["p3"].Active, "categoría inactiva apaga el producto")
	assert.Equal(t, "SELFGROWN", res.ProductsByID["p1"].CategoryType)
	assert.Equal(t, "COOPERATION", res.ProductsByID["p3"].CategoryType)
}

func TestAggregate_SumaOfertas(t *testing.T) {
	orders := []entity.Order{
		{ID: "o1", UserID: "u1", DepotID: "d1", Offer: decimal.NewFromFloat(10.5)},
		{ID: "o2", UserID: "u2", DepotID: "d1", Offer: dec(20)},
	}
	res, err := bi.AggregateDemandAndDelivery(bi.AggregateInput{
		Orders:            orders,
		ProductCategories: catalogoDePrueba(),
		Depots:            depositosDePrueba(),
		Now:               fecha("2025-05-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "30.5", res.Offers.String())
}

// Un producto referenciado pero ausente del catálogo es una violación de
// integridad referencial, no un valor por defecto silencioso.
func TestAggregate_ProductoDesconocidoFallaRapido(t *testing.T) {
	orders := []entity.Order{
		{ID: "o1", UserID: "u1", DepotID: "d1",
			Items: []entity.OrderItem{{ProductID: "fantasma", Value: dec(1)}}},
	}
	_, err := bi.AggregateDemandAndDelivery(bi.AggregateInput{
		Orders:            orders,
		ProductCategories: catalogoDePrueba(),
		Depots:            depositosDePrueba(),
		Now:               fecha("2025-05-10"),
	})
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
}

func TestAggregate_DepositoDesconocidoFallaRapido(t *testing.T) {
	orders := []entity.Order{
		{ID: "o1", UserID: "u1", DepotID: "inexistente",
			Items: []entity.OrderItem{{ProductID: "p1", Value: dec(1)}}},
	}
	_, err := bi.AggregateDemandAndDelivery(bi.AggregateInput{
		Orders:            orders,
		ProductCategories: catalogoDePrueba(),
		Depots:            depositosDePrueba(),
		Now:               fecha("2025-05-10"),
	})
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
}

// Ejecutar el agregador dos veces sobre el mismo snapshot produce salidas
// idénticas: no hay mutación oculta de las entradas ni estado entre llamadas.
func TestAggregate_Idempotente(t *testing.T) {
	orders := []entity.Order{
		{ID: "o1", UserID: "u1", DepotID: "d1", ValidFrom: fechaPtr("2025-04-01"), Offer: dec(12),
			Items: []entity.OrderItem{{ProductID: "p1", Value: dec(5)}}},
	}
	shipments := []entity.Shipment{
		{ID: "s1", Type: entity.ShipmentTypeNormal, ValidFrom: fecha("2025-05-01"), Active: true,
			Items: []entity.ShipmentItem{{ProductID: "p1", DepotID: "d1", Multiplicator: dec(100)}}},
	}
	in := bi.AggregateInput{
		Orders:            orders,
		Shipments:         shipments,
		ProductCategories: catalogoDePrueba(),
		Depots:            depositosDePrueba(),
		Now:               fecha("2025-05-10"),
	}

	primera, err := bi.AggregateDemandAndDelivery(in)
	require.NoError(t, err)
	segunda, err := bi.AggregateDemandAndDelivery(in)
	require.NoError(t, err)

	assert.Equal(t, primera, segunda)
}
