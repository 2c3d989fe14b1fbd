package entity

import "github.com/shopspring/decimal"

// Unit unidad de medida del producto.
type Unit string

const (
	UnitWeight Unit = "WEIGHT" // se normaliza a gramos (×1000)
	UnitPiece  Unit = "PIECE"
	UnitVolume Unit = "VOLUME" // se normaliza a mililitros (×1000)
)

// Product producto ofrecido en una temporada.
// Quantity es la cantidad objetivo por entrega; Frequency el número planificado
// de entregas a lo largo de la temporada.
type Product struct {
	ID                string
	ProductCategoryID string
	Name              string
	Quantity          decimal.Decimal
	Frequency         int
	Unit              Unit
	Active            bool
}

// NormalizedQuantity devuelve Quantity escalada a la unidad base
// (gramos/mililitros para WEIGHT/VOLUME, sin escala para PIECE).
func (p Product) NormalizedQuantity() decimal.Decimal {
	if p.Unit == UnitPiece {
		return p.Quantity
	}
	return p.Quantity.Mul(decimal.NewFromInt(1000))
}

// ProductCategory agrupa productos de una temporada.
type ProductCategory struct {
	ID                  string
	RequisitionConfigID string
	Name                string
	Typ                 string
	Active              bool
	Products            []Product
}
