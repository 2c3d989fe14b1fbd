package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentType tipo de entrega.
type ShipmentType string

const (
	ShipmentTypeNormal   ShipmentType = "NORMAL"   // entrega real o planificada, con fecha efectiva única
	ShipmentTypeDraft    ShipmentType = "DRAFT"    // borrador, excluido de todo cálculo
	ShipmentTypeForecast ShipmentType = "FORECAST" // predicción sobre el intervalo [ValidFrom, ValidTo)
)

// Shipment representa una entrega a los depósitos de una temporada.
// Las NORMAL tienen una única fecha efectiva (ValidFrom); las FORECAST cubren
// el intervalo [ValidFrom, ValidTo) y se reconcilian contra las entregas reales.
type Shipment struct {
	ID                  string
	RequisitionConfigID string
	Type                ShipmentType
	ValidFrom           time.Time
	ValidTo             *time.Time // solo FORECAST
	Active              bool
	Description         string
	Items               []ShipmentItem
	UpdatedAt           time.Time
}

// ShipmentItem entrega de un producto a un depósito.
// Multiplicator es un porcentaje del requerimiento por entrega del depósito (100 = completo).
type ShipmentItem struct {
	ProductID     string
	DepotID       string
	Multiplicator decimal.Decimal
	Description   string
}
