package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cosecha-api/internal/domain/entity"
	"github.com/jhoicas/cosecha-api/internal/domain/repository"
)

var (
	_ repository.ProductCategoryRepository   = (*ProductCategoryRepo)(nil)
	_ repository.DepotRepository             = (*DepotRepo)(nil)
	_ repository.RequisitionConfigRepository = (*RequisitionConfigRepo)(nil)
)

// ProductCategoryRepo implementación del puerto ProductCategoryRepository sobre PostgreSQL.
type ProductCategoryRepo struct {
	q Querier
}

// NewProductCategoryRepository construye el adaptador de persistencia para el catálogo.
func NewProductCategoryRepository(q Querier) *ProductCategoryRepo {
	return &ProductCategoryRepo{q: q}
}

// ListByConfig devuelve las categorías de la temporada con sus productos.
func (r *ProductCategoryRepo) ListByConfig(configID string) ([]entity.ProductCategory, error) {
	query := `
		SELECT id, requisition_config_id, name, typ, active
		FROM product_categories WHERE requisition_config_id = $1
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, configID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []entity.ProductCategory
	index := make(map[string]int)
	for rows.Next() {
		var c entity.ProductCategory
		if err := rows.Scan(&c.ID, &c.RequisitionConfigID, &c.Name, &c.Typ, &c.Active); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return categories, nil
	}

	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	productQuery := `
		SELECT id, product_category_id, name, quantity, frequency, unit, active
		FROM products WHERE product_category_id = ANY($1)
		ORDER BY name`
	productRows, err := r.q.Query(context.Background(), productQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer productRows.Close()

	for productRows.Next() {
		var p entity.Product
		if err := productRows.Scan(&p.ID, &p.ProductCategoryID, &p.Name, &p.Quantity, &p.Frequency, &p.Unit, &p.Active); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		i := index[p.ProductCategoryID]
		categories[i].Products = append(categories[i].Products, p)
	}
	if err := productRows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return categories, nil
}

// DepotRepo implementación del puerto DepotRepository sobre PostgreSQL.
type DepotRepo struct {
	q Querier
}

// NewDepotRepository construye el adaptador de persistencia para depósitos.
func NewDepotRepository(q Querier) *DepotRepo {
	return &DepotRepo{q: q}
}

// List devuelve todos los depósitos.
func (r *DepotRepo) List() ([]entity.Depot, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, name, capacity FROM depots ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list depots: %w", err)
	}
	defer rows.Close()

	var depots []entity.Depot
	for rows.Next() {
		var d entity.Depot
		if err := rows.Scan(&d.ID, &d.Name, &d.Capacity); err != nil {
			return nil, fmt.Errorf("scan depot: %w", err)
		}
		depots = append(depots, d)
	}
	return depots, rows.Err()
}

// RequisitionConfigRepo implementación del puerto RequisitionConfigRepository sobre PostgreSQL.
type RequisitionConfigRepo struct {
	q Querier
}

// NewRequisitionConfigRepository construye el adaptador de persistencia para temporadas.
func NewRequisitionConfigRepository(q Querier) *RequisitionConfigRepo {
	return &RequisitionConfigRepo{q: q}
}

// GetByID obtiene una temporada por ID. Devuelve nil si no existe.
func (r *RequisitionConfigRepo) GetByID(id string) (*entity.RequisitionConfig, error) {
	query := `
		SELECT id, name, valid_from, valid_to, bidding_start, bidding_end
		FROM requisition_configs WHERE id = $1`
	var c entity.RequisitionConfig
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.ValidFrom, &c.ValidTo, &c.BiddingStart, &c.BiddingEnd,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get config: %w", err)
	}
	return &c, nil
}
