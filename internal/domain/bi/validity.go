package bi

import (
	"time"

	"github.com/jhoicas/cosecha-api/internal/domain/entity"
)

// CurrentValidOrders filtra los pedidos válidos en el instante at:
// ValidFrom ausente o <= at, y ValidTo ausente o > at.
// No asume ni impone unicidad por usuario; si el invariante "a lo sumo un
// pedido válido por usuario" se viola aguas arriba, devuelve todos.
func CurrentValidOrders(orders []entity.Order, at time.Time) []entity.Order {
	valid := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if o.ValidOn(at) {
			valid = append(valid, o)
		}
	}
	return valid
}

// CurrentValidOrdersByUser devuelve el pedido válido de cada usuario en at.
// Conserva el primer pedido válido encontrado en el orden de entrada
// (los callers cargan ordenado por usuario y ValidFrom).
func CurrentValidOrdersByUser(orders []entity.Order, at time.Time) map[string]entity.Order {
	byUser := make(map[string]entity.Order)
	for _, o := range orders {
		if !o.ValidOn(at) {
			continue
		}
		if _, ok := byUser[o.UserID]; !ok {
			byUser[o.UserID] = o
		}
	}
	return byUser
}
