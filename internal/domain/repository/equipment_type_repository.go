package repository

import (
	"context"
	"time"

	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
)

// EquipmentTypeRepository define el puerto de persistencia del catálogo de tipos de equipo.
type EquipmentTypeRepository interface {
	Create(ctx context.Context, t *entity.EquipmentType) error
	GetByID(ctx context.Context, id, vendorID string) (*entity.EquipmentType, error)
	ListByVendor(ctx context.Context, vendorID string, limit, offset int) ([]*entity.EquipmentType, int, error)
	Update(ctx context.Context, t *entity.EquipmentType) (int64, error)
	SoftDelete(ctx context.Context, id, vendorID string, at time.Time) (int64, error)
}
