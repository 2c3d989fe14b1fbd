package repository

import "github.com/jhoicas/cosecha-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	// ListByConfig devuelve los pedidos de una temporada con sus ítems,
	// ordenados por (userID, validFrom). Con confirmedOnly solo devuelve
	// pedidos con las condiciones generales aceptadas.
	ListByConfig(configID string, confirmedOnly bool) ([]entity.Order, error)
	GetByID(id string) (*entity.Order, error)
}
