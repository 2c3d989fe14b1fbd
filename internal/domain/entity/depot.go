package entity

// Depot punto de entrega donde los miembros recogen su parte.
// Capacity nil = sin límite de miembros.
type Depot struct {
	ID       string
	Name     string
	Capacity *int
}
