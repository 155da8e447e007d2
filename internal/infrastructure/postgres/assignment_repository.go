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

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

const assignmentColumns = `id, assignment_number, vendor_id, client_id, status, total_cost,
	assignment_date, notes, created_at, updated_at`

// AssignmentRepo implementación de AssignmentRepository sobre PostgreSQL (pool o tx).
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// CountByNumberPrefix cuenta asignaciones cuyo número empieza con prefix (ej: ASG-20240601-).
func (r *AssignmentRepo) CountByNumberPrefix(ctx context.Context, prefix string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM equipment_assignments WHERE assignment_number LIKE $1`,
		escapeLike(prefix)+"%",
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count assignments by prefix: %w", err)
	}
	return n, nil
}

// Create inserta la cabecera de la asignación.
func (r *AssignmentRepo) Create(ctx context.Context, a *entity.EquipmentAssignment) error {
	query := `
		INSERT INTO equipment_assignments (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.AssignmentNumber, a.VendorID, a.ClientID, a.Status, a.TotalCost,
		a.AssignmentDate, a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && violatedConstraint(err) == constraintAssignmentNumber {
			return domain.ErrDuplicateAssignmentNumber
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert equipment assignment: %w", err)
	}
	return nil
}

// CreateItem inserta un ítem de la asignación. Una instancia inexistente devuelve ErrNotFound.
func (r *AssignmentRepo) CreateItem(ctx context.Context, it *entity.AssignmentItem) error {
	query := `
		INSERT INTO assignment_items (id, assignment_id, equipment_instance_id, quantity, unit_cost, total_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.AssignmentID, it.EquipmentInstanceID, it.Quantity, it.UnitCost, it.TotalCost, it.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert assignment item: %w", err)
	}
	return nil
}

// DeleteItemsByInstance elimina los ítems que referencian la instancia.
func (r *AssignmentRepo) DeleteItemsByInstance(ctx context.Context, instanceID string) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM assignment_items WHERE equipment_instance_id = $1`,
		instanceID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete assignment items: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeactivateOrphans marca inactive las asignaciones activas del proveedor que se quedaron sin ítems.
func (r *AssignmentRepo) DeactivateOrphans(ctx context.Context, vendorID string, at time.Time) (int64, error) {
	query := `
		UPDATE equipment_assignments a
		SET status = 'inactive', updated_at = $2
		WHERE a.vendor_id = $1
		  AND a.status = 'active'
		  AND NOT EXISTS (SELECT 1 FROM assignment_items i WHERE i.assignment_id = a.id)`
	tag, err := r.q.Exec(ctx, query, vendorID, at)
	if err != nil {
		return 0, fmt.Errorf("deactivate orphan assignments: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetByID obtiene una asignación del proveedor. nil, nil si no existe.
func (r *AssignmentRepo) GetByID(ctx context.Context, id, vendorID string) (*entity.EquipmentAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM equipment_assignments WHERE id = $1 AND vendor_id = $2`
	var a entity.EquipmentAssignment
	err := r.q.QueryRow(ctx, query, id, vendorID).Scan(
		&a.ID, &a.AssignmentNumber, &a.VendorID, &a.ClientID, &a.Status, &a.TotalCost,
		&a.AssignmentDate, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment assignment: %w", err)
	}
	return &a, nil
}

// ListItems lista los ítems de una asignación.
func (r *AssignmentRepo) ListItems(ctx context.Context, assignmentID string) ([]*entity.AssignmentItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, assignment_id, equipment_instance_id, quantity, unit_cost, total_cost, created_at
		FROM assignment_items
		WHERE assignment_id = $1
		ORDER BY created_at, id`, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("list assignment items: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AssignmentItem, 0)
	for rows.Next() {
		var it entity.AssignmentItem
		if err := rows.Scan(&it.ID, &it.AssignmentID, &it.EquipmentInstanceID, &it.Quantity, &it.UnitCost, &it.TotalCost, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListHistoryByInstance historial de asignaciones de la instancia, más recientes primero.
func (r *AssignmentRepo) ListHistoryByInstance(ctx context.Context, instanceID, vendorID string, limit int) ([]*entity.AssignmentHistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT a.id, a.assignment_number, a.client_id, COALESCE(c.name, ''), a.status,
		       i.unit_cost, i.total_cost, a.assignment_date, a.created_at
		FROM assignment_items i
		JOIN equipment_assignments a ON a.id = i.assignment_id
		LEFT JOIN clients c ON c.id = a.client_id
		WHERE i.equipment_instance_id = $1 AND a.vendor_id = $2
		ORDER BY a.created_at DESC, a.assignment_number DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, instanceID, vendorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list assignment history: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AssignmentHistoryEntry, 0)
	for rows.Next() {
		var h entity.AssignmentHistoryEntry
		if err := rows.Scan(&h.AssignmentID, &h.AssignmentNumber, &h.ClientID, &h.ClientName, &h.Status,
			&h.UnitCost, &h.TotalCost, &h.AssignmentDate, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
