package entity

import "time"

// Vendor representa un proveedor de equipos contra incendio (tenant del sistema).
type Vendor struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
