package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrConfigNotFound       = errors.New("temporada no encontrada")
	ErrOrderNotFound        = errors.New("pedido no encontrado")
	ErrReferentialIntegrity = errors.New("violación de integridad referencial")
	ErrReconcileLoop        = errors.New("la reconciliación de pronósticos no converge")
	ErrZeroFrequency        = errors.New("producto con frecuencia cero")
	ErrDepotFull            = errors.New("depósito sin capacidad disponible")
)
