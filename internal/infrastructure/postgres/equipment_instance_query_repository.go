package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
)

var _ repository.EquipmentInstanceQueryRepository = (*EquipmentInstanceQueryRepo)(nil)

var instanceViewColumns = []string{
	"ei.id", "ei.equipment_type_id", "ei.vendor_id", "ei.serial_number", "ei.status", "ei.compliance_status",
	"ei.purchase_date", "ei.warranty_expiry", "ei.expiry_date", "ei.next_maintenance_date", "ei.maintenance_interval_days",
	"ei.assigned_to", "ei.assigned_at", "ei.location", "ei.notes", "ei.created_at", "ei.updated_at", "ei.deleted_at",
	"et.name", "et.code", "et.manufacturer", "et.model", "c.name",
}

// EquipmentInstanceQueryRepo lecturas de instancias con su tipo y cliente (consultas armadas con squirrel).
type EquipmentInstanceQueryRepo struct {
	q Querier
}

// NewEquipmentInstanceQueryRepository construye el adaptador de lectura.
func NewEquipmentInstanceQueryRepository(q Querier) *EquipmentInstanceQueryRepo {
	return &EquipmentInstanceQueryRepo{q: q}
}

func instanceViewFrom(b sq.SelectBuilder) sq.SelectBuilder {
	return b.From("equipment_instances ei").
		Join("equipment_types et ON et.id = ei.equipment_type_id").
		LeftJoin("clients c ON c.id = ei.assigned_to")
}

// buildListQueries arma el COUNT y el SELECT paginado con los mismos filtros.
func buildListQueries(vendorID string, f repository.InstanceFilter) (countSQL string, countArgs []any, listSQL string, listArgs []any, err error) {
	base := sq.Eq{"ei.vendor_id": vendorID, "ei.deleted_at": nil}

	count := applyInstanceFilters(instanceViewFrom(psql.Select("COUNT(*)")).Where(base), f)
	countSQL, countArgs, err = count.ToSql()
	if err != nil {
		return "", nil, "", nil, fmt.Errorf("build count instances: %w", err)
	}

	list := applyInstanceFilters(instanceViewFrom(psql.Select(instanceViewColumns...)).Where(base), f).
		OrderBy("ei.created_at DESC", "ei.id")
	if f.Limit > 0 {
		list = list.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		list = list.Offset(uint64(f.Offset))
	}
	listSQL, listArgs, err = list.ToSql()
	if err != nil {
		return "", nil, "", nil, fmt.Errorf("build list instances: %w", err)
	}
	return countSQL, countArgs, listSQL, listArgs, nil
}

// List devuelve la página de instancias y el total que cumple los filtros.
func (r *EquipmentInstanceQueryRepo) List(ctx context.Context, vendorID string, f repository.InstanceFilter) ([]*entity.EquipmentInstanceView, int, error) {
	countSQL, countArgs, listSQL, listArgs, err := buildListQueries(vendorID, f)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count instances: %w", err)
	}
	if total == 0 {
		return []*entity.EquipmentInstanceView{}, 0, nil
	}
	list, err := r.queryViews(ctx, listSQL, listArgs)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// GetView obtiene la instancia con su tipo y cliente. nil, nil si no existe o es de otro proveedor.
func (r *EquipmentInstanceQueryRepo) GetView(ctx context.Context, id, vendorID string) (*entity.EquipmentInstanceView, error) {
	query, args, err := instanceViewFrom(psql.Select(instanceViewColumns...)).
		Where(sq.Eq{"ei.id": id, "ei.vendor_id": vendorID, "ei.deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get instance view: %w", err)
	}
	v, err := scanInstanceView(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get instance view: %w", err)
	}
	return v, nil
}

// ListRelated instancias hermanas: mismo tipo y proveedor, excluyendo la propia.
func (r *EquipmentInstanceQueryRepo) ListRelated(ctx context.Context, inst *entity.EquipmentInstance, limit int) ([]*entity.EquipmentInstanceView, error) {
	b := instanceViewFrom(psql.Select(instanceViewColumns...)).
		Where(sq.Eq{"ei.vendor_id": inst.VendorID, "ei.equipment_type_id": inst.EquipmentTypeID, "ei.deleted_at": nil}).
		Where(sq.NotEq{"ei.id": inst.ID}).
		OrderBy("ei.serial_number")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build related instances: %w", err)
	}
	return r.queryViews(ctx, query, args)
}

func (r *EquipmentInstanceQueryRepo) queryViews(ctx context.Context, query string, args []any) ([]*entity.EquipmentInstanceView, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list instances: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.EquipmentInstanceView, 0)
	for rows.Next() {
		v, err := scanInstanceView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan instance: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func scanInstanceView(row pgx.Row) (*entity.EquipmentInstanceView, error) {
	var v entity.EquipmentInstanceView
	e := &v.EquipmentInstance
	err := row.Scan(
		&e.ID, &e.EquipmentTypeID, &e.VendorID, &e.SerialNumber, &e.Status, &e.ComplianceStatus,
		&e.PurchaseDate, &e.WarrantyExpiry, &e.ExpiryDate, &e.NextMaintenanceDate, &e.MaintenanceIntervalDays,
		&e.AssignedTo, &e.AssignedAt, &e.Location, &e.Notes, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
		&v.TypeName, &v.TypeCode, &v.TypeManufacturer, &v.TypeModel, &v.ClientName,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
