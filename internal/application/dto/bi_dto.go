package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SoldDTO demanda acumulada de un producto.
type SoldDTO struct {
	Quantity        decimal.Decimal `json:"quantity"`
	Sold            decimal.Decimal `json:"sold"`
	SoldForShipment decimal.Decimal `json:"soldForShipment"`
	Frequency       int             `json:"frequency"`
}

// DeliveredDTO demanda y entrega de un producto en un depósito.
type DeliveredDTO struct {
	Value             decimal.Decimal `json:"value"`
	ValueForShipment  decimal.Decimal `json:"valueForShipment"`
	Delivered         decimal.Decimal `json:"delivered"`
	ActuallyDelivered decimal.Decimal `json:"actuallyDelivered"`
	Frequency         int             `json:"frequency"`
	DeliveryCount     int             `json:"deliveryCount"`
}

// CapacityDTO ocupación de un depósito.
type CapacityDTO struct {
	Capacity *int `json:"capacity"`
	Reserved int  `json:"reserved"`
}

// CatalogProductDTO producto decorado con su categoría.
type CatalogProductDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Frequency    int             `json:"frequency"`
	Unit         string          `json:"unit"`
	Active       bool            `json:"active"`
	CategoryType string          `json:"productCategoryType"`
}

// BIResponse vista agregada de demanda, entrega y capacidad de una temporada.
type BIResponse struct {
	SoldByProductID             map[string]SoldDTO                 `json:"soldByProductId"`
	DeliveredByProductIDDepotID map[string]map[string]DeliveredDTO `json:"deliveredByProductIdDepotId"`
	CapacityByDepotID           map[string]CapacityDTO             `json:"capacityByDepotId"`
	ProductsByID                map[string]CatalogProductDTO       `json:"productsById"`
	Offers                      decimal.Decimal                    `json:"offers"`
}

// MergedShipmentItemDTO ítem de entrega con los pronósticos ya reconciliados.
type MergedShipmentItemDTO struct {
	ShipmentID    string          `json:"shipmentId"`
	ProductID     string          `json:"productId"`
	DepotID       string          `json:"depotId"`
	Multiplicator decimal.Decimal `json:"multiplicator"`
	Description   string          `json:"description,omitempty"`
	ValidFrom     time.Time       `json:"validFrom"`
	ValidTo       *time.Time      `json:"validTo,omitempty"`
	Forecast      bool            `json:"forecast"`
}

// ProductAvailabilityDTO estadísticas de entrega de un producto.
type ProductAvailabilityDTO struct {
	WeightedDelivered  decimal.Decimal `json:"weightedDelivered"`
	Frequency          int             `json:"frequency"`
	Deliveries         decimal.Decimal `json:"deliveries"`
	RoundedDeliveries  decimal.Decimal `json:"roundedDeliveries"`
	DeliveryPercentage decimal.Decimal `json:"deliveryPercentage"`
	MsrpWeight         decimal.Decimal `json:"msrpWeight"`
}

// AvailabilityResponse pesos de disponibilidad por producto.
type AvailabilityResponse struct {
	AvailabilityByProductID map[string]ProductAvailabilityDTO `json:"availabilityByProductId"`
	MsrpWeightsByProductID  map[string]decimal.Decimal        `json:"msrpWeightsByProductId"`
}
