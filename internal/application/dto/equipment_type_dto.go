package dto

import (
	"encoding/json"
	"time"
)

// CreateEquipmentTypeRequest entrada para crear un tipo de equipo del catálogo.
type CreateEquipmentTypeRequest struct {
	Name                 string          `json:"name" validate:"required,min=1,max=200"`
	Code                 string          `json:"code" validate:"required,min=1,max=50"`
	Manufacturer         string          `json:"manufacturer" validate:"max=200"`
	Model                string          `json:"model" validate:"max=200"`
	DefaultLifespanYears int             `json:"default_lifespan_years" validate:"omitempty,min=1,max=50"`
	Specifications       json.RawMessage `json:"specifications"`
}

// UpdateEquipmentTypeRequest campos descriptivos editables (la identidad y el código no cambian).
type UpdateEquipmentTypeRequest struct {
	Name                 *string         `json:"name" validate:"omitempty,min=1,max=200"`
	Manufacturer         *string         `json:"manufacturer" validate:"omitempty,max=200"`
	Model                *string         `json:"model" validate:"omitempty,max=200"`
	DefaultLifespanYears *int            `json:"default_lifespan_years" validate:"omitempty,min=1,max=50"`
	Specifications       json.RawMessage `json:"specifications"`
}

// EquipmentTypeResponse salida de un tipo de equipo.
type EquipmentTypeResponse struct {
	ID                   string          `json:"id"`
	VendorID             string          `json:"vendor_id"`
	Name                 string          `json:"name"`
	Code                 string          `json:"code"`
	Manufacturer         string          `json:"manufacturer"`
	Model                string          `json:"model"`
	DefaultLifespanYears int             `json:"default_lifespan_years"`
	Specifications       json.RawMessage `json:"specifications"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// EquipmentTypeListResponse lista paginada de tipos.
type EquipmentTypeListResponse struct {
	Items []EquipmentTypeResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
