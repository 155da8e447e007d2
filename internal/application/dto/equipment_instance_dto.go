package dto

import "time"

// CreateInstanceRequest entrada para registrar una unidad física.
// Las fechas de vencimiento y próximo mantenimiento se calculan en el servidor.
type CreateInstanceRequest struct {
	EquipmentTypeID         string  `json:"equipment_type_id" validate:"required,uuid"`
	SerialNumber            string  `json:"serial_number" validate:"required,min=1,max=100"`
	PurchaseDate            string  `json:"purchase_date" validate:"required,datetime=2006-01-02"`
	WarrantyExpiry          *string `json:"warranty_expiry" validate:"omitempty,datetime=2006-01-02"`
	MaintenanceIntervalDays int     `json:"maintenance_interval_days" validate:"omitempty,min=1,max=3650"`
	Location                string  `json:"location" validate:"max=255"`
	Notes                   string  `json:"notes" validate:"max=2000"`
}

// UpdateInstanceRequest actualización parcial: los campos omitidos conservan su valor.
// "assigned" no se acepta: solo el motor de asignaciones mueve una unidad a ese estado.
type UpdateInstanceRequest struct {
	Status              *string `json:"status" validate:"omitempty,oneof=available maintenance retired"`
	NextMaintenanceDate *string `json:"next_maintenance_date" validate:"omitempty,datetime=2006-01-02"`
	Location            *string `json:"location" validate:"omitempty,max=255"`
	Notes               *string `json:"notes" validate:"omitempty,max=2000"`
}

// InstanceListQuery filtros y paginación del listado de instancias.
type InstanceListQuery struct {
	PageRequest
	Status           string `query:"status" validate:"omitempty,oneof=available assigned maintenance retired"`
	ComplianceStatus string `query:"compliance_status" validate:"omitempty,oneof=compliant due_soon overdue expired"`
	Search           string `query:"search" validate:"max=100"`
	EquipmentTypeID  string `query:"equipment_type_id" validate:"omitempty,uuid"`
}

// EquipmentTypeSummary datos del tipo embebidos en la instancia.
type EquipmentTypeSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
}

// ClientSummary cliente asignado embebido en la instancia.
type ClientSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InstanceResponse salida de una instancia.
type InstanceResponse struct {
	ID                      string                `json:"id"`
	EquipmentTypeID         string                `json:"equipment_type_id"`
	VendorID                string                `json:"vendor_id"`
	SerialNumber            string                `json:"serial_number"`
	Status                  string                `json:"status"`
	ComplianceStatus        string                `json:"compliance_status"`
	PurchaseDate            string                `json:"purchase_date"`
	WarrantyExpiry          *string               `json:"warranty_expiry"`
	ExpiryDate              string                `json:"expiry_date"`
	NextMaintenanceDate     *string               `json:"next_maintenance_date"`
	MaintenanceIntervalDays int                   `json:"maintenance_interval_days"`
	AssignedTo              *string               `json:"assigned_to"`
	AssignedAt              *time.Time            `json:"assigned_at"`
	Location                string                `json:"location"`
	Notes                   string                `json:"notes"`
	EquipmentType           *EquipmentTypeSummary `json:"equipment_type,omitempty"`
	Client                  *ClientSummary        `json:"client,omitempty"`
	CreatedAt               time.Time             `json:"created_at"`
	UpdatedAt               time.Time             `json:"updated_at"`
	DeletedAt               *time.Time            `json:"deleted_at,omitempty"`
}

// InstanceListResponse lista paginada de instancias.
type InstanceListResponse struct {
	Items []InstanceResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// InstanceDetailResponse instancia con tipo, cliente e historiales.
type InstanceDetailResponse struct {
	InstanceResponse
	OpenTickets int                         `json:"open_tickets"`
	Assignments []AssignmentHistoryResponse `json:"assignments"`
	Maintenance []MaintenanceTicketResponse `json:"maintenance"`
}

// MaintenanceTicketResponse ticket de mantenimiento (solo lectura).
type MaintenanceTicketResponse struct {
	ID               string    `json:"id"`
	TicketNumber     string    `json:"ticket_number"`
	Status           string    `json:"status"`
	Priority         string    `json:"priority"`
	IssueDescription string    `json:"issue_description"`
	ClientID         *string   `json:"client_id"`
	ScheduledDate    *string   `json:"scheduled_date"`
	CompletedDate    *string   `json:"completed_date"`
	CreatedAt        time.Time `json:"created_at"`
}
