package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa el pedido de un miembro para una temporada.
// Un miembro puede tener varios pedidos (historial de modificaciones); como máximo
// uno es válido en un instante dado según [ValidFrom, ValidTo). La unicidad la
// garantiza la capa de guardado, no este modelo.
type Order struct {
	ID                  string
	UserID              string
	DepotID             string
	RequisitionConfigID string
	ValidFrom           *time.Time // nil = válido desde siempre
	ValidTo             *time.Time // nil = sin fin; exclusivo (termina exactamente donde empieza el sucesor)
	Offer               decimal.Decimal
	ConfirmGTC          bool
	Items               []OrderItem
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OrderItem cantidad pedida de un producto, en unidades nativas del producto.
// La cantidad "vendida" normalizada se deriva multiplicando por la frecuencia del producto.
type OrderItem struct {
	ProductID string
	Value     decimal.Decimal
}

// ValidOn indica si el pedido es válido en el instante at.
// ValidFrom es inclusivo, ValidTo exclusivo.
func (o Order) ValidOn(at time.Time) bool {
	if o.ValidFrom != nil && o.ValidFrom.After(at) {
		return false
	}
	if o.ValidTo != nil && !o.ValidTo.After(at) {
		return false
	}
	return true
}
