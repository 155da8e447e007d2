package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/FireSafety-api/internal/domain"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
)

var _ repository.EquipmentInstanceRepository = (*EquipmentInstanceRepo)(nil)

const instanceColumns = `id, equipment_type_id, vendor_id, serial_number, status, compliance_status,
	purchase_date, warranty_expiry, expiry_date, next_maintenance_date, maintenance_interval_days,
	assigned_to, assigned_at, location, notes, created_at, updated_at, deleted_at`

// EquipmentInstanceRepo implementación de EquipmentInstanceRepository sobre PostgreSQL (pool o tx).
// Las transiciones de estado son UPDATE condicionales: el llamador decide qué hacer con 0 filas.
type EquipmentInstanceRepo struct {
	q Querier
}

// NewEquipmentInstanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipmentInstanceRepository(q Querier) *EquipmentInstanceRepo {
	return &EquipmentInstanceRepo{q: q}
}

// Create inserta la instancia. El índice único parcial sobre serial_number devuelve ErrDuplicateSerialNumber.
func (r *EquipmentInstanceRepo) Create(ctx context.Context, e *entity.EquipmentInstance) error {
	query := `
		INSERT INTO equipment_instances (` + instanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.EquipmentTypeID, e.VendorID, e.SerialNumber, e.Status, e.ComplianceStatus,
		e.PurchaseDate, e.WarrantyExpiry, e.ExpiryDate, e.NextMaintenanceDate, e.MaintenanceIntervalDays,
		e.AssignedTo, e.AssignedAt, e.Location, e.Notes, e.CreatedAt, e.UpdatedAt, e.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && violatedConstraint(err) == constraintInstanceSerial {
			return domain.ErrDuplicateSerialNumber
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert equipment instance: %w", err)
	}
	return nil
}

// ExistsActiveSerial indica si el serial existe entre instancias no eliminadas.
func (r *EquipmentInstanceRepo) ExistsActiveSerial(ctx context.Context, serial string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM equipment_instances WHERE serial_number = $1 AND deleted_at IS NULL)`,
		serial,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check serial number: %w", err)
	}
	return exists, nil
}

// GetByID obtiene una instancia no eliminada del proveedor. nil, nil si no existe.
func (r *EquipmentInstanceRepo) GetByID(ctx context.Context, id, vendorID string) (*entity.EquipmentInstance, error) {
	return r.get(ctx, id, vendorID, "")
}

// GetForUpdate como GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *EquipmentInstanceRepo) GetForUpdate(ctx context.Context, id, vendorID string) (*entity.EquipmentInstance, error) {
	return r.get(ctx, id, vendorID, " FOR UPDATE")
}

func (r *EquipmentInstanceRepo) get(ctx context.Context, id, vendorID, lock string) (*entity.EquipmentInstance, error) {
	query := `SELECT ` + instanceColumns + `
		FROM equipment_instances
		WHERE id = $1 AND vendor_id = $2 AND deleted_at IS NULL` + lock
	e, err := scanInstance(r.q.QueryRow(ctx, query, id, vendorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment instance: %w", err)
	}
	return e, nil
}

// UpdateFields persiste los campos editables si el estado sigue siendo expectedStatus.
func (r *EquipmentInstanceRepo) UpdateFields(ctx context.Context, e *entity.EquipmentInstance, expectedStatus string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE equipment_instances
		SET status = $3, next_maintenance_date = $4, location = $5, notes = $6, compliance_status = $7, updated_at = $8
		WHERE id = $1 AND vendor_id = $2 AND status = $9 AND deleted_at IS NULL`,
		e.ID, e.VendorID, e.Status, e.NextMaintenanceDate, e.Location, e.Notes, e.ComplianceStatus, e.UpdatedAt,
		expectedStatus,
	)
	if err != nil {
		return 0, fmt.Errorf("update equipment instance: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// SoftDeleteAvailable marca deleted_at solo si la instancia está available y sin cliente asignado.
func (r *EquipmentInstanceRepo) SoftDeleteAvailable(ctx context.Context, id, vendorID string, at time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE equipment_instances SET deleted_at = $3, updated_at = $3
		WHERE id = $1 AND vendor_id = $2 AND status = 'available' AND assigned_to IS NULL AND deleted_at IS NULL`,
		id, vendorID, at,
	)
	if err != nil {
		return 0, fmt.Errorf("soft delete equipment instance: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// MarkAssigned available -> assigned.
func (r *EquipmentInstanceRepo) MarkAssigned(ctx context.Context, id, vendorID, clientID string, at time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE equipment_instances SET status = 'assigned', assigned_to = $3, assigned_at = $4, updated_at = $4
		WHERE id = $1 AND vendor_id = $2 AND status = 'available' AND deleted_at IS NULL`,
		id, vendorID, clientID, at,
	)
	if err != nil {
		return 0, fmt.Errorf("mark equipment instance assigned: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// MarkAssignedBulk available -> assigned para todos los ids del proveedor en un solo UPDATE.
func (r *EquipmentInstanceRepo) MarkAssignedBulk(ctx context.Context, ids []string, vendorID, clientID string, at time.Time) (int64, error) {
	query, args, err := psql.Update("equipment_instances").
		Set("status", entity.InstanceStatusAssigned).
		Set("assigned_to", clientID).
		Set("assigned_at", at).
		Set("updated_at", at).
		Where(sq.Eq{"id": ids}).
		Where(sq.Eq{"vendor_id": vendorID, "status": entity.InstanceStatusAvailable, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build bulk assign: %w", err)
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk mark equipment instances assigned: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// MarkAvailable assigned -> available, limpiando assigned_to y assigned_at.
func (r *EquipmentInstanceRepo) MarkAvailable(ctx context.Context, id, vendorID string, at time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE equipment_instances SET status = 'available', assigned_to = NULL, assigned_at = NULL, updated_at = $3
		WHERE id = $1 AND vendor_id = $2 AND status = 'assigned' AND deleted_at IS NULL`,
		id, vendorID, at,
	)
	if err != nil {
		return 0, fmt.Errorf("mark equipment instance available: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func scanInstance(row pgx.Row) (*entity.EquipmentInstance, error) {
	var e entity.EquipmentInstance
	err := row.Scan(
		&e.ID, &e.EquipmentTypeID, &e.VendorID, &e.SerialNumber, &e.Status, &e.ComplianceStatus,
		&e.PurchaseDate, &e.WarrantyExpiry, &e.ExpiryDate, &e.NextMaintenanceDate, &e.MaintenanceIntervalDays,
		&e.AssignedTo, &e.AssignedAt, &e.Location, &e.Notes, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
