package bi

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/cosecha-api/internal/domain/entity"
)

// RemainingDepotCapacity plazas libres de un depósito dado lo ya reservado.
// Devuelve nil si el depósito no tiene límite. Si el miembro ya ocupa este
// depósito (savedDepotID), su propia plaza no cuenta contra él.
func RemainingDepotCapacity(depot entity.Depot, reserved int, savedDepotID string) *int {
	if depot.Capacity == nil {
		return nil
	}
	remaining := *depot.Capacity - reserved
	if depot.ID == savedDepotID {
		remaining++
	}
	return &remaining
}

// RemainingQuantity cantidad aún disponible de un producto dado lo vendido.
// savedValue es el valor del ítem previo del propio pedido que se está
// modificando; se devuelve al total porque será reemplazado.
func RemainingQuantity(sold Sold, savedValue decimal.Decimal) decimal.Decimal {
	remaining := sold.Quantity.Sub(sold.Sold)
	if savedValue.IsPositive() {
		remaining = remaining.Add(savedValue.Mul(decimal.NewFromInt(int64(sold.Frequency))))
	}
	return remaining
}
