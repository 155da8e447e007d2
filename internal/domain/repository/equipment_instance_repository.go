package repository

import (
	"context"
	"time"

	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
)

// EquipmentInstanceRepository define el puerto de escritura y lectura puntual de instancias.
// Usable con pool o dentro de una transacción. Los métodos Mark* devuelven las filas afectadas:
// el predicado del UPDATE expresa el estado esperado y 0 filas significa que no se cumplió.
type EquipmentInstanceRepository interface {
	Create(ctx context.Context, inst *entity.EquipmentInstance) error
	// ExistsActiveSerial indica si el número de serie existe entre instancias no eliminadas.
	ExistsActiveSerial(ctx context.Context, serial string) (bool, error)
	// GetByID devuelve nil, nil si no existe, está eliminada o pertenece a otro proveedor.
	GetByID(ctx context.Context, id, vendorID string) (*entity.EquipmentInstance, error)
	// GetForUpdate como GetByID pero bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id, vendorID string) (*entity.EquipmentInstance, error)
	// UpdateFields persiste status, next_maintenance_date, location, notes y compliance_status
	// solo si el estado actual sigue siendo expectedStatus.
	UpdateFields(ctx context.Context, inst *entity.EquipmentInstance, expectedStatus string) (int64, error)
	// SoftDeleteAvailable marca deleted_at solo si la instancia está available y sin cliente.
	SoftDeleteAvailable(ctx context.Context, id, vendorID string, at time.Time) (int64, error)
	// MarkAssigned pasa available -> assigned.
	MarkAssigned(ctx context.Context, id, vendorID, clientID string, at time.Time) (int64, error)
	// MarkAssignedBulk pasa available -> assigned para todos los ids del proveedor.
	MarkAssignedBulk(ctx context.Context, ids []string, vendorID, clientID string, at time.Time) (int64, error)
	// MarkAvailable pasa assigned -> available y limpia assigned_to / assigned_at.
	MarkAvailable(ctx context.Context, id, vendorID string, at time.Time) (int64, error)
}

// InstanceFilter filtros enumerados del listado de instancias.
// Today y HorizonDays permiten evaluar compliance_status con las mismas reglas del clasificador.
type InstanceFilter struct {
	Status           string
	ComplianceStatus string
	Search           string
	EquipmentTypeID  string
	Today            time.Time
	HorizonDays      int
	Limit            int
	Offset           int
}

// EquipmentInstanceQueryRepository puerto de solo lectura (listados y detalle).
type EquipmentInstanceQueryRepository interface {
	List(ctx context.Context, vendorID string, f InstanceFilter) ([]*entity.EquipmentInstanceView, int, error)
	GetView(ctx context.Context, id, vendorID string) (*entity.EquipmentInstanceView, error)
	// ListRelated instancias del mismo tipo y proveedor, excluyendo la propia.
	ListRelated(ctx context.Context, inst *entity.EquipmentInstance, limit int) ([]*entity.EquipmentInstanceView, error)
}
