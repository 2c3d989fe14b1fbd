package repository

import "github.com/jhoicas/cosecha-api/internal/domain/entity"

// ProductCategoryRepository define el puerto de persistencia para el catálogo
// de categorías y productos de una temporada.
type ProductCategoryRepository interface {
	// ListByConfig devuelve las categorías de la temporada con sus productos.
	ListByConfig(configID string) ([]entity.ProductCategory, error)
}

// DepotRepository define el puerto de persistencia para Depot.
type DepotRepository interface {
	List() ([]entity.Depot, error)
}

// RequisitionConfigRepository define el puerto de persistencia para la
// configuración de temporada.
type RequisitionConfigRepository interface {
	GetByID(id string) (*entity.RequisitionConfig, error)
}
