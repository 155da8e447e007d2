package repository

import (
	"context"
	"time"

	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
)

// AssignmentRepository define el puerto de persistencia de asignaciones e ítems.
// Se usa dentro de transacciones del motor de asignaciones.
type AssignmentRepository interface {
	// CountByNumberPrefix cuenta asignaciones cuyo número empieza con prefix.
	CountByNumberPrefix(ctx context.Context, prefix string) (int, error)
	// Create devuelve domain.ErrDuplicateAssignmentNumber si el número ya existe.
	Create(ctx context.Context, a *entity.EquipmentAssignment) error
	// CreateItem devuelve domain.ErrNotFound si la instancia referenciada no existe.
	CreateItem(ctx context.Context, item *entity.AssignmentItem) error
	DeleteItemsByInstance(ctx context.Context, instanceID string) (int64, error)
	// DeactivateOrphans marca inactive las asignaciones activas del proveedor sin ítems.
	DeactivateOrphans(ctx context.Context, vendorID string, at time.Time) (int64, error)
	GetByID(ctx context.Context, id, vendorID string) (*entity.EquipmentAssignment, error)
	ListItems(ctx context.Context, assignmentID string) ([]*entity.AssignmentItem, error)
	ListHistoryByInstance(ctx context.Context, instanceID, vendorID string, limit int) ([]*entity.AssignmentHistoryEntry, error)
}
