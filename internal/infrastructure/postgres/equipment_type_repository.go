package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/FireSafety-api/internal/domain"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
)

var _ repository.EquipmentTypeRepository = (*EquipmentTypeRepo)(nil)

const equipmentTypeColumns = `id, vendor_id, name, code, manufacturer, model, default_lifespan_years,
	COALESCE(specifications, '{}'::jsonb), created_at, updated_at, deleted_at`

// EquipmentTypeRepo catálogo de tipos de equipo sobre PostgreSQL.
type EquipmentTypeRepo struct {
	q Querier
}

// NewEquipmentTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipmentTypeRepository(q Querier) *EquipmentTypeRepo {
	return &EquipmentTypeRepo{q: q}
}

// Create inserta el tipo. Código repetido en el proveedor devuelve ErrDuplicate.
func (r *EquipmentTypeRepo) Create(ctx context.Context, t *entity.EquipmentType) error {
	query := `
		INSERT INTO equipment_types (id, vendor_id, name, code, manufacturer, model, default_lifespan_years,
			specifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.VendorID, t.Name, t.Code, t.Manufacturer, t.Model, t.DefaultLifespanYears,
		specificationsArg(t.Specifications), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert equipment type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo no eliminado del proveedor. nil, nil si no existe.
func (r *EquipmentTypeRepo) GetByID(ctx context.Context, id, vendorID string) (*entity.EquipmentType, error) {
	query := `SELECT ` + equipmentTypeColumns + `
		FROM equipment_types WHERE id = $1 AND vendor_id = $2 AND deleted_at IS NULL`
	t, err := scanEquipmentType(r.q.QueryRow(ctx, query, id, vendorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment type: %w", err)
	}
	return t, nil
}

// ListByVendor lista los tipos del proveedor con el total.
func (r *EquipmentTypeRepo) ListByVendor(ctx context.Context, vendorID string, limit, offset int) ([]*entity.EquipmentType, int, error) {
	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM equipment_types WHERE vendor_id = $1 AND deleted_at IS NULL`, vendorID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count equipment types: %w", err)
	}
	query := `SELECT ` + equipmentTypeColumns + `
		FROM equipment_types
		WHERE vendor_id = $1 AND deleted_at IS NULL
		ORDER BY name, code
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, vendorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list equipment types: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.EquipmentType, 0)
	for rows.Next() {
		t, err := scanEquipmentType(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan equipment type: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// Update actualiza los campos descriptivos. El código no cambia.
func (r *EquipmentTypeRepo) Update(ctx context.Context, t *entity.EquipmentType) (int64, error) {
	query := `
		UPDATE equipment_types
		SET name = $3, manufacturer = $4, model = $5, default_lifespan_years = $6, specifications = $7, updated_at = $8
		WHERE id = $1 AND vendor_id = $2 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.VendorID, t.Name, t.Manufacturer, t.Model, t.DefaultLifespanYears,
		specificationsArg(t.Specifications), t.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("update equipment type: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SoftDelete marca deleted_at. Devuelve filas afectadas.
func (r *EquipmentTypeRepo) SoftDelete(ctx context.Context, id, vendorID string, at time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE equipment_types SET deleted_at = $3, updated_at = $3 WHERE id = $1 AND vendor_id = $2 AND deleted_at IS NULL`,
		id, vendorID, at,
	)
	if err != nil {
		return 0, fmt.Errorf("delete equipment type: %w", err)
	}
	return tag.RowsAffected(), nil
}

// specificationsArg envía NULL cuando no hay especificaciones.
func specificationsArg(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func scanEquipmentType(row pgx.Row) (*entity.EquipmentType, error) {
	var t entity.EquipmentType
	var specs []byte
	if err := row.Scan(&t.ID, &t.VendorID, &t.Name, &t.Code, &t.Manufacturer, &t.Model, &t.DefaultLifespanYears,
		&specs, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt); err != nil {
		return nil, err
	}
	t.Specifications = specs
	return &t, nil
}
