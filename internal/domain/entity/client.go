package entity

import "time"

// Estados de un Client.
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusPending  = "pending"
)

// Client representa un cliente del proveedor (edificio, empresa) al que se asignan equipos.
type Client struct {
	ID                string
	CreatedByVendorID string
	Name              string
	ContactName       string
	Email             string
	Phone             string
	Address           string
	Status            string // active, inactive, pending
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsAssignable indica si se pueden asignar equipos del proveedor a este cliente.
func (c *Client) IsAssignable(vendorID string) bool {
	return c != nil && c.CreatedByVendorID == vendorID && c.Status == ClientStatusActive
}

// IsValidClientStatus valida el estado de un cliente.
func IsValidClientStatus(s string) bool {
	switch s {
	case ClientStatusActive, ClientStatusInactive, ClientStatusPending:
		return true
	}
	return false
}
