package entity

import "time"

// Estados físicos de una instancia de equipo.
const (
	InstanceStatusAvailable   = "available"
	InstanceStatusAssigned    = "assigned"
	InstanceStatusMaintenance = "maintenance"
	InstanceStatusRetired     = "retired"
)

// Estados de cumplimiento (derivados, ver domain/compliance).
const (
	ComplianceCompliant = "compliant"
	ComplianceDueSoon   = "due_soon"
	ComplianceOverdue   = "overdue"
	ComplianceExpired   = "expired"
)

// DefaultMaintenanceIntervalDays intervalo de mantenimiento cuando no se indica.
const DefaultMaintenanceIntervalDays = 365

// EquipmentInstance unidad física con número de serie, propiedad de un único proveedor.
// Invariante: AssignedTo != nil <=> Status == InstanceStatusAssigned.
type EquipmentInstance struct {
	ID                      string
	EquipmentTypeID         string
	VendorID                string
	SerialNumber            string
	Status                  string
	ComplianceStatus        string
	PurchaseDate            time.Time
	WarrantyExpiry          *time.Time
	ExpiryDate              time.Time
	NextMaintenanceDate     *time.Time
	MaintenanceIntervalDays int
	AssignedTo              *string
	AssignedAt              *time.Time
	Location                string
	Notes                   string
	CreatedAt               time.Time
	UpdatedAt               time.Time
	DeletedAt               *time.Time
}

// IsAssigned indica si la instancia está asignada a un cliente.
func (e *EquipmentInstance) IsAssigned() bool {
	return e.Status == InstanceStatusAssigned || e.AssignedTo != nil
}

// EquipmentInstanceView instancia con datos de su tipo y del cliente asignado (lecturas).
type EquipmentInstanceView struct {
	EquipmentInstance
	TypeName         string
	TypeCode         string
	TypeManufacturer string
	TypeModel        string
	ClientName       *string
}

// IsValidInstanceStatus valida el estado de una instancia.
func IsValidInstanceStatus(s string) bool {
	switch s {
	case InstanceStatusAvailable, InstanceStatusAssigned, InstanceStatusMaintenance, InstanceStatusRetired:
		return true
	}
	return false
}

// IsValidComplianceStatus valida un estado de cumplimiento.
func IsValidComplianceStatus(s string) bool {
	switch s {
	case ComplianceCompliant, ComplianceDueSoon, ComplianceOverdue, ComplianceExpired:
		return true
	}
	return false
}
