package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssignInstanceRequest asignación de una sola instancia. TotalCost vacío = UnitCost.
type AssignInstanceRequest struct {
	ClientID  string           `json:"client_id" validate:"required,uuid"`
	UnitCost  decimal.Decimal  `json:"unit_cost"`
	TotalCost *decimal.Decimal `json:"total_cost"`
	Notes     string           `json:"notes" validate:"max=2000"`
}

// BulkAssignRequest asignación de varias instancias en una sola transacción.
type BulkAssignRequest struct {
	ClientID       string          `json:"client_id" validate:"required,uuid"`
	InstanceIDs    []string        `json:"instance_ids" validate:"required,min=1,max=500,unique,dive,uuid"`
	AssignmentDate string          `json:"assignment_date" validate:"omitempty,datetime=2006-01-02"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Notes          string          `json:"notes" validate:"max=2000"`
}

// AssignmentItemResponse ítem de una asignación.
type AssignmentItemResponse struct {
	ID                  string          `json:"id"`
	EquipmentInstanceID string          `json:"equipment_instance_id"`
	Quantity            int             `json:"quantity"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	TotalCost           decimal.Decimal `json:"total_cost"`
}

// AssignmentResponse salida de una asignación.
type AssignmentResponse struct {
	ID               string                   `json:"id"`
	AssignmentNumber string                   `json:"assignment_number"`
	VendorID         string                   `json:"vendor_id"`
	ClientID         string                   `json:"client_id"`
	Status           string                   `json:"status"`
	TotalCost        decimal.Decimal          `json:"total_cost"`
	AssignmentDate   string                   `json:"assignment_date"`
	Notes            string                   `json:"notes"`
	Items            []AssignmentItemResponse `json:"items"`
	CreatedAt        time.Time                `json:"created_at"`
}

// BulkAssignResponse resultado de la asignación masiva.
type BulkAssignResponse struct {
	AssignmentID     string `json:"assignment_id"`
	AssignmentNumber string `json:"assignment_number"`
	Count            int    `json:"count"`
}

// RemoveAssignmentResponse resultado de retirar la asignación de una instancia.
type RemoveAssignmentResponse struct {
	Success  bool   `json:"success"`
	ClientID string `json:"client_id"`
}

// AssignmentHistoryResponse fila del historial de asignaciones de una instancia.
type AssignmentHistoryResponse struct {
	AssignmentID     string          `json:"assignment_id"`
	AssignmentNumber string          `json:"assignment_number"`
	ClientID         string          `json:"client_id"`
	ClientName       string          `json:"client_name"`
	Status           string          `json:"status"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	AssignmentDate   string          `json:"assignment_date"`
	CreatedAt        time.Time       `json:"created_at"`
}
