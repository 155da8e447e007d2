package postgres

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
)

// instanceFilter predicado con nombre; build devuelve nil cuando el filtro no aplica.
type instanceFilter struct {
	name  string
	build func(f repository.InstanceFilter) sq.Sqlizer
}

// instanceFilters conjunto cerrado de filtros del listado de instancias, en orden estable.
var instanceFilters = []instanceFilter{
	{name: "status", build: func(f repository.InstanceFilter) sq.Sqlizer {
		if f.Status == "" {
			return nil
		}
		return sq.Eq{"ei.status": f.Status}
	}},
	{name: "compliance_status", build: func(f repository.InstanceFilter) sq.Sqlizer {
		if f.ComplianceStatus == "" {
			return nil
		}
		return complianceCondition(f.ComplianceStatus, f.Today, f.HorizonDays)
	}},
	{name: "search", build: func(f repository.InstanceFilter) sq.Sqlizer {
		term := strings.TrimSpace(f.Search)
		if term == "" {
			return nil
		}
		pat := "%" + escapeLike(term) + "%"
		return sq.Or{
			sq.ILike{"ei.serial_number": pat},
			sq.ILike{"et.name": pat},
			sq.ILike{"et.code": pat},
		}
	}},
	{name: "equipment_type_id", build: func(f repository.InstanceFilter) sq.Sqlizer {
		if f.EquipmentTypeID == "" {
			return nil
		}
		return sq.Eq{"ei.equipment_type_id": f.EquipmentTypeID}
	}},
}

func applyInstanceFilters(b sq.SelectBuilder, f repository.InstanceFilter) sq.SelectBuilder {
	for _, filter := range instanceFilters {
		if cond := filter.build(f); cond != nil {
			b = b.Where(cond)
		}
	}
	return b
}

// complianceCondition traduce un estado de cumplimiento a SQL con las mismas reglas que compliance.Classifier.
func complianceCondition(status string, today time.Time, horizonDays int) sq.Sqlizer {
	if horizonDays <= 0 {
		horizonDays = 30
	}
	horizon := today.AddDate(0, 0, horizonDays)
	notOverdue := sq.Or{sq.Eq{"ei.next_maintenance_date": nil}, sq.GtOrEq{"ei.next_maintenance_date": today}}

	switch status {
	case entity.ComplianceExpired:
		return sq.Lt{"ei.expiry_date": today}
	case entity.ComplianceOverdue:
		return sq.And{
			sq.GtOrEq{"ei.expiry_date": today},
			sq.Lt{"ei.next_maintenance_date": today},
		}
	case entity.ComplianceDueSoon:
		return sq.And{
			sq.GtOrEq{"ei.expiry_date": today},
			notOverdue,
			sq.Or{
				sq.LtOrEq{"ei.next_maintenance_date": horizon},
				sq.LtOrEq{"ei.expiry_date": horizon},
			},
		}
	case entity.ComplianceCompliant:
		return sq.And{
			sq.Gt{"ei.expiry_date": horizon},
			sq.Or{sq.Eq{"ei.next_maintenance_date": nil}, sq.Gt{"ei.next_maintenance_date": horizon}},
		}
	}
	// Estado desconocido: no coincide con nada.
	return sq.Expr("FALSE")
}
