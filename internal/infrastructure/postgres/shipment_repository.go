package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/cosecha-api/internal/domain/entity"
	"github.com/jhoicas/cosecha-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación del puerto ShipmentRepository sobre PostgreSQL.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador de persistencia para envíos. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// ListNormalBefore devuelve los envíos NORMAL activos con valid_from < before,
// ordenados por valid_from ascendente, con sus ítems.
func (r *ShipmentRepo) ListNormalBefore(configID string, before time.Time) ([]entity.Shipment, error) {
	query := `
		SELECT id, requisition_config_id, type, valid_from, valid_to, active, description, updated_at
		FROM shipments
		WHERE requisition_config_id = $1 AND type = $2 AND active = true AND valid_from < $3
		ORDER BY valid_from`
	return r.list(query, configID, entity.ShipmentTypeNormal, before)
}

// ListForecast devuelve los envíos FORECAST activos con valid_from < before
// cuya ventana sigue abierta (valid_to > after).
func (r *ShipmentRepo) ListForecast(configID string, before, after time.Time) ([]entity.Shipment, error) {
	query := `
		SELECT id, requisition_config_id, type, valid_from, valid_to, active, description, updated_at
		FROM shipments
		WHERE requisition_config_id = $1 AND type = $2 AND active = true
		  AND valid_from < $3 AND valid_to > $4
		ORDER BY valid_from`
	return r.list(query, configID, entity.ShipmentTypeForecast, before, after)
}

func (r *ShipmentRepo) list(query string, args ...any) ([]entity.Shipment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var shipments []entity.Shipment
	index := make(map[string]int)
	for rows.Next() {
		var s entity.Shipment
		if err := rows.Scan(
			&s.ID, &s.RequisitionConfigID, &s.Type, &s.ValidFrom, &s.ValidTo,
			&s.Active, &s.Description, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		index[s.ID] = len(shipments)
		shipments = append(shipments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	if err := r.attachItems(shipments, index); err != nil {
		return nil, err
	}
	return shipments, nil
}

func (r *ShipmentRepo) attachItems(shipments []entity.Shipment, index map[string]int) error {
	if len(shipments) == 0 {
		return nil
	}
	ids := make([]string, 0, len(shipments))
	for _, s := range shipments {
		ids = append(ids, s.ID)
	}
	query := `
		SELECT shipment_id, product_id, depot_id, multiplicator, description
		FROM shipment_items WHERE shipment_id = ANY($1)
		ORDER BY shipment_id, product_id, depot_id`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("list shipment items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var shipmentID string
		var item entity.ShipmentItem
		if err := rows.Scan(&shipmentID, &item.ProductID, &item.DepotID, &item.Multiplicator, &item.Description); err != nil {
			return fmt.Errorf("scan shipment item: %w", err)
		}
		i := index[shipmentID]
		shipments[i].Items = append(shipments[i].Items, item)
	}
	return rows.Err()
}
