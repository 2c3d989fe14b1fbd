package entity

import "time"

// RequisitionConfig configuración de una temporada: ventana de validez y
// ventana de puja durante la cual los pedidos existentes pueden modificarse.
type RequisitionConfig struct {
	ID           string
	Name         string
	ValidFrom    time.Time
	ValidTo      time.Time
	BiddingStart time.Time
	BiddingEnd   time.Time
}
