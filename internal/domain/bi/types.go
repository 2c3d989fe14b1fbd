// Package bi reconcilia pedidos, entregas reales y pronósticos de entrega en
// una vista consistente: capacidad por depósito, cantidades vendidas por
// producto y peso de disponibilidad (msrpWeight) que escala el precio de la
// suscripción. Todas las funciones son puras: operan sobre el snapshot que el
// caller ya cargó y no persisten ni cachean nada.
package bi

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/cosecha-api/internal/domain/entity"
)

// Sold demanda acumulada de un producto.
type Sold struct {
	Quantity        decimal.Decimal // cantidad objetivo por entrega, en unidad base
	Sold            decimal.Decimal // value × frequency sobre todos los pedidos
	SoldForShipment decimal.Decimal // solo pedidos cuyo ValidFrom ya pasó
	Frequency       int
}

// Delivered acumulado de demanda y entrega para un producto en un depósito.
type Delivered struct {
	Value             decimal.Decimal // cantidad pedida
	ValueForShipment  decimal.Decimal // solo pedidos cuyo ValidFrom ya pasó
	Delivered         decimal.Decimal // suma de multiplicadores de todas las entregas
	ActuallyDelivered decimal.Decimal // solo entregas activas
	Frequency         int
	DeliveryCount     int
}

// DepotCapacity ocupación de un depósito. Reserved cuenta miembros distintos
// con pedido no vacío en el depósito, no ítems.
type DepotCapacity struct {
	Capacity *int
	Reserved int
}

// CatalogProduct producto decorado con los datos de su categoría.
// Active combina la actividad de la categoría y la del producto.
type CatalogProduct struct {
	entity.Product
	CategoryType string
}

// BIResult resultado del agregador de demanda y entrega.
type BIResult struct {
	SoldByProductID             map[string]Sold
	DeliveredByProductIDDepotID map[string]map[string]Delivered
	CapacityByDepotID           map[string]DepotCapacity
	ProductsByID                map[string]CatalogProduct
	Offers                      decimal.Decimal
}

// MergedShipmentItem ítem de entrega aplanado con la validez de su envío padre.
// Para ítems NORMAL, ValidTo es nil; para restos de pronóstico conserva la
// ventana [ValidFrom, ValidTo) original.
type MergedShipmentItem struct {
	ShipmentID    string
	ProductID     string
	DepotID       string
	Multiplicator decimal.Decimal
	Description   string
	ValidFrom     time.Time
	ValidTo       *time.Time
	Active        bool
	Forecast      bool
}

// ProductAvailability estadísticas de entrega de un producto hasta la fecha objetivo.
type ProductAvailability struct {
	WeightedDelivered  decimal.Decimal // suma sobre envíos del multiplicador promediado por depósito
	Frequency          int
	Deliveries         decimal.Decimal // WeightedDelivered / 100
	RoundedDeliveries  decimal.Decimal
	DeliveryPercentage decimal.Decimal // WeightedDelivered / Frequency
	MsrpWeight         decimal.Decimal // clamp(1 - WeightedDelivered/(Frequency×100), 0, 1)
}

// AvailabilityWeights salida del cálculo de pesos de disponibilidad.
// Un producto jamás entregado no aparece en los mapas; los consumidores deben
// asumir peso 1 (precio completo) para productos ausentes.
type AvailabilityWeights struct {
	AvailabilityByProductID map[string]ProductAvailability
	MsrpWeightsByProductID  map[string]decimal.Decimal
}
