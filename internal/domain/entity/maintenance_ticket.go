package entity

import "time"

// Estados de un ticket de mantenimiento (flujo externo al motor de asignaciones).
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusCompleted  = "completed"
	TicketStatusCancelled  = "cancelled"
)

// MaintenanceTicket ticket creado contra una instancia. Solo lectura desde este servicio.
type MaintenanceTicket struct {
	ID                  string
	TicketNumber        string
	EquipmentInstanceID string
	VendorID            string
	ClientID            *string
	Status              string
	Priority            string
	IssueDescription    string
	ScheduledDate       *time.Time
	CompletedDate       *time.Time
	CreatedAt           time.Time
}
