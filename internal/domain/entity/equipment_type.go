package entity

import (
	"encoding/json"
	"time"
)

// DefaultLifespanYears vida útil por defecto cuando el tipo no la define.
const DefaultLifespanYears = 10

// EquipmentType entrada del catálogo del proveedor (extintor PQS 10 lb, gabinete, detector...).
type EquipmentType struct {
	ID                   string
	VendorID             string
	Name                 string
	Code                 string // único por proveedor
	Manufacturer         string
	Model                string
	DefaultLifespanYears int
	Specifications       json.RawMessage
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time
}

// LifespanYears devuelve la vida útil efectiva.
func (t *EquipmentType) LifespanYears() int {
	if t.DefaultLifespanYears <= 0 {
		return DefaultLifespanYears
	}
	return t.DefaultLifespanYears
}
