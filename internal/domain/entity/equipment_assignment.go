package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una asignación.
const (
	AssignmentStatusActive   = "active"
	AssignmentStatusInactive = "inactive"
)

// EquipmentAssignment transacción que entrega una o más instancias a un cliente.
// Sin ítems restantes la asignación queda huérfana y se marca inactive.
type EquipmentAssignment struct {
	ID               string
	AssignmentNumber string // ASG-YYYYMMDD-NNN, único
	VendorID         string
	ClientID         string
	Status           string
	TotalCost        decimal.Decimal
	AssignmentDate   time.Time
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AssignmentItem une una asignación con una instancia física (Quantity siempre 1).
type AssignmentItem struct {
	ID                  string
	AssignmentID        string
	EquipmentInstanceID string
	Quantity            int
	UnitCost            decimal.Decimal
	TotalCost           decimal.Decimal
	CreatedAt           time.Time
}

// AssignmentHistoryEntry fila del historial de asignaciones de una instancia.
type AssignmentHistoryEntry struct {
	AssignmentID     string
	AssignmentNumber string
	ClientID         string
	ClientName       string
	Status           string
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal
	AssignmentDate   time.Time
	CreatedAt        time.Time
}
