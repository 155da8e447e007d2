package compliance

import (
	"time"

	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
)

// DefaultHorizonDays días de anticipación con los que un vencimiento pasa a "due_soon".
const DefaultHorizonDays = 30

// Dates fechas de una instancia relevantes para el cumplimiento.
type Dates struct {
	PurchaseDate        time.Time
	ExpiryDate          time.Time
	NextMaintenanceDate *time.Time
}

// Classifier deriva el estado de cumplimiento (servicio de dominio puro, sin reloj propio).
type Classifier struct {
	horizonDays int
}

// NewClassifier construye el clasificador. horizonDays <= 0 usa DefaultHorizonDays.
func NewClassifier(horizonDays int) Classifier {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return Classifier{horizonDays: horizonDays}
}

// HorizonDays devuelve el horizonte configurado.
func (c Classifier) HorizonDays() int { return c.horizonDays }

// Classify aplica las reglas en orden de prioridad (la primera que coincide gana):
//  1. expired  si expiry < hoy
//  2. overdue  si next_maintenance < hoy
//  3. due_soon si next_maintenance o expiry caen dentro del horizonte
//  4. compliant en otro caso
//
// Las comparaciones son por día calendario (UTC).
func (c Classifier) Classify(d Dates, today time.Time) string {
	t := Day(today)
	horizon := t.AddDate(0, 0, c.horizonDays)
	expiry := Day(d.ExpiryDate)

	if expiry.Before(t) {
		return entity.ComplianceExpired
	}
	if d.NextMaintenanceDate != nil {
		nm := Day(*d.NextMaintenanceDate)
		if nm.Before(t) {
			return entity.ComplianceOverdue
		}
		if !nm.After(horizon) {
			return entity.ComplianceDueSoon
		}
	}
	if !expiry.After(horizon) {
		return entity.ComplianceDueSoon
	}
	return entity.ComplianceCompliant
}

// Classify clasifica con el horizonte por defecto.
func Classify(d Dates, today time.Time) string {
	return NewClassifier(DefaultHorizonDays).Classify(d, today)
}

// ExpiryDate fecha de vencimiento: compra + vida útil en años.
func ExpiryDate(purchase time.Time, lifespanYears int) time.Time {
	return Day(purchase).AddDate(lifespanYears, 0, 0)
}

// NextMaintenanceDate próximo mantenimiento: desde + intervalo en días.
func NextMaintenanceDate(from time.Time, intervalDays int) time.Time {
	return Day(from).AddDate(0, 0, intervalDays)
}

// Day trunca t a medianoche UTC conservando la fecha calendario de t.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
