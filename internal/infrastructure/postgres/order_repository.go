package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cosecha-api/internal/domain/entity"
	"github.com/jhoicas/cosecha-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// ListByConfig devuelve los pedidos de la temporada con sus ítems, ordenados
// por (user_id, valid_from) para que el primer pedido válido de cada usuario
// sea el vigente.
func (r *OrderRepo) ListByConfig(configID string, confirmedOnly bool) ([]entity.Order, error) {
	query := `
		SELECT id, user_id, depot_id, requisition_config_id, valid_from, valid_to, offer, confirm_gtc, created_at, updated_at
		FROM orders
		WHERE requisition_config_id = $1 AND ($2 = false OR confirm_gtc = true)
		ORDER BY user_id, valid_from NULLS FIRST`
	rows, err := r.q.Query(context.Background(), query, configID, confirmedOnly)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []entity.Order
	index := make(map[string]int)
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.DepotID, &o.RequisitionConfigID,
			&o.ValidFrom, &o.ValidTo, &o.Offer, &o.ConfirmGTC, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if err := r.attachItems(orders, index); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID obtiene un pedido por ID con sus ítems. Devuelve nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `
		SELECT id, user_id, depot_id, requisition_config_id, valid_from, valid_to, offer, confirm_gtc, created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.UserID, &o.DepotID, &o.RequisitionConfigID,
		&o.ValidFrom, &o.ValidTo, &o.Offer, &o.ConfirmGTC, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	orders := []entity.Order{o}
	if err := r.attachItems(orders, map[string]int{o.ID: 0}); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *OrderRepo) attachItems(orders []entity.Order, index map[string]int) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	query := `
		SELECT order_id, product_id, value
		FROM order_items WHERE order_id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var item entity.OrderItem
		if err := rows.Scan(&orderID, &item.ProductID, &item.Value); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		i := index[orderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	return rows.Err()
}
