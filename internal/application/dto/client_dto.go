package dto

import "time"

// CreateClientRequest entrada para registrar un cliente del proveedor.
type CreateClientRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	ContactName string `json:"contact_name" validate:"max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"max=50"`
	Address     string `json:"address" validate:"max=300"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive pending"`
}

// UpdateClientStatusRequest cambio de estado de un cliente.
type UpdateClientStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive pending"`
}

// ClientListQuery filtros del listado de clientes.
type ClientListQuery struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=active inactive pending"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID          string    `json:"id"`
	VendorID    string    `json:"vendor_id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
