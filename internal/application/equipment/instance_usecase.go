package equipment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/FireSafety-api/internal/application/dto"
	"github.com/jhoicas/FireSafety-api/internal/domain"
	"github.com/jhoicas/FireSafety-api/internal/domain/compliance"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
	"github.com/jhoicas/FireSafety-api/pkg/logger"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// InstanceUseCase alta, edición y baja lógica de instancias físicas.
// Las fechas de vencimiento y mantenimiento se calculan aquí, nunca se toman del cliente.
type InstanceUseCase struct {
	txRunner   TxRunner
	instances  repository.EquipmentInstanceRepository
	types      repository.EquipmentTypeRepository
	classifier compliance.Classifier
	cfg        Config
	log        *logger.Logger
}

// NewInstanceUseCase construye el caso de uso.
func NewInstanceUseCase(
	txRunner TxRunner,
	instances repository.EquipmentInstanceRepository,
	types repository.EquipmentTypeRepository,
	cfg Config,
	log *logger.Logger,
) *InstanceUseCase {
	return &InstanceUseCase{
		txRunner:   txRunner,
		instances:  instances,
		types:      types,
		classifier: compliance.NewClassifier(cfg.HorizonDays),
		cfg:        cfg,
		log:        log.Named("equipment.instances"),
	}
}

// NormalizeSerial recorta espacios y pasa a mayúsculas el número de serie.
func NormalizeSerial(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// Create registra una instancia en estado available.
func (uc *InstanceUseCase) Create(ctx context.Context, vendorID string, in dto.CreateInstanceRequest) (*dto.InstanceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	serial := NormalizeSerial(in.SerialNumber)
	if serial == "" {
		return nil, domain.NewValidationError("serial_number", "es obligatorio")
	}
	purchase, err := parseDate("purchase_date", in.PurchaseDate)
	if err != nil {
		return nil, err
	}
	warranty, err := parseDatePtr("warranty_expiry", in.WarrantyExpiry)
	if err != nil {
		return nil, err
	}
	interval := in.MaintenanceIntervalDays
	if interval <= 0 {
		interval = entity.DefaultMaintenanceIntervalDays
	}

	ctx, cancel := uc.cfg.withTimeout(ctx)
	defer cancel()

	typ, err := uc.types.GetByID(ctx, in.EquipmentTypeID, vendorID)
	if err != nil {
		return nil, storageFailure(uc.log, "instance.create", err, "vendor_id", vendorID, "equipment_type_id", in.EquipmentTypeID)
	}
	if typ == nil {
		return nil, domain.ErrNotFound
	}
	exists, err := uc.instances.ExistsActiveSerial(ctx, serial)
	if err != nil {
		return nil, storageFailure(uc.log, "instance.create", err, "vendor_id", vendorID)
	}
	if exists {
		return nil, domain.ErrDuplicateSerialNumber
	}

	now := uc.cfg.now()
	nextMaintenance := compliance.NextMaintenanceDate(purchase, interval)
	inst := &entity.EquipmentInstance{
		ID:                      uuid.New().String(),
		EquipmentTypeID:         typ.ID,
		VendorID:                vendorID,
		SerialNumber:            serial,
		Status:                  entity.InstanceStatusAvailable,
		PurchaseDate:            purchase,
		WarrantyExpiry:          warranty,
		ExpiryDate:              compliance.ExpiryDate(purchase, typ.LifespanYears()),
		NextMaintenanceDate:     &nextMaintenance,
		MaintenanceIntervalDays: interval,
		Location:                strings.TrimSpace(in.Location),
		Notes:                   in.Notes,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	inst.ComplianceStatus = uc.classify(inst, now)

	// El índice único parcial cubre la carrera entre la verificación previa y el INSERT.
	if err := uc.instances.Create(ctx, inst); err != nil {
		return nil, storageFailure(uc.log, "instance.create", err, "vendor_id", vendorID, "instance_id", inst.ID)
	}
	out := toInstanceResponse(inst)
	out.EquipmentType = &dto.EquipmentTypeSummary{
		ID: typ.ID, Name: typ.Name, Code: typ.Code, Manufacturer: typ.Manufacturer, Model: typ.Model,
	}
	return out, nil
}

// Update aplica una actualización parcial. La propiedad del proveedor forma parte del predicado:
// una instancia ajena se reporta como ErrNotFound.
func (uc *InstanceUseCase) Update(ctx context.Context, vendorID, id string, in dto.UpdateInstanceRequest) (*dto.InstanceResponse, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	nextMaintenance, err := parseDatePtr("next_maintenance_date", in.NextMaintenanceDate)
	if err != nil {
		return nil, err
	}

	ctx, cancel := uc.cfg.withTimeout(ctx)
	defer cancel()

	inst, err := uc.instances.GetByID(ctx, id, vendorID)
	if err != nil {
		return nil, storageFailure(uc.log, "instance.update", err, "vendor_id", vendorID, "instance_id", id)
	}
	if inst == nil {
		return nil, domain.ErrNotFound
	}
	prior := inst.Status

	if in.Status != nil && *in.Status != prior {
		// Salir de "assigned" solo es posible retirando la asignación.
		if inst.IsAssigned() {
			return nil, domain.ErrHasActiveAssignment
		}
		inst.Status = *in.Status
	}
	if nextMaintenance != nil {
		inst.NextMaintenanceDate = nextMaintenance
	}
	if in.Location != nil {
		inst.Location = strings.TrimSpace(*in.Location)
	}
	if in.Notes != nil {
		inst.Notes = *in.Notes
	}
	now := uc.cfg.now()
	inst.ComplianceStatus = uc.classify(inst, now)
	inst.UpdatedAt = now

	n, err := uc.instances.UpdateFields(ctx, inst, prior)
	if err != nil {
		return nil, storageFailure(uc.log, "instance.update", err, "vendor_id", vendorID, "instance_id", id)
	}
	if n == 0 {
		// El estado cambió entre la lectura y la escritura (o la instancia fue eliminada).
		current, err := uc.instances.GetByID(ctx, id, vendorID)
		if err != nil {
			return nil, storageFailure(uc.log, "instance.update", err, "vendor_id", vendorID, "instance_id", id)
		}
		if current == nil {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrConflict
	}
	return toInstanceResponse(inst), nil
}

// Delete marca la instancia como eliminada. Solo se elimina desde available: asignada falla con
// ErrHasActiveAssignment, en mantenimiento o retirada con ErrConflict.
// La verificación y el UPDATE condicional ocurren en la misma transacción.
func (uc *InstanceUseCase) Delete(ctx context.Context, vendorID, id string) (*dto.InstanceResponse, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	ctx, cancel := uc.cfg.withTimeout(ctx)
	defer cancel()

	var deleted *entity.EquipmentInstance
	err := uc.txRunner.Run(ctx, func(instances repository.EquipmentInstanceRepository, _ repository.AssignmentRepository) error {
		inst, err := instances.GetForUpdate(ctx, id, vendorID)
		if err != nil {
			return err
		}
		if inst == nil {
			return domain.ErrNotFound
		}
		if inst.AssignedTo != nil || inst.Status == entity.InstanceStatusAssigned {
			return domain.ErrHasActiveAssignment
		}
		if inst.Status != entity.InstanceStatusAvailable {
			return domain.ErrConflict
		}
		now := uc.cfg.now()
		n, err := instances.SoftDeleteAvailable(ctx, id, vendorID, now)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrConflict
		}
		inst.DeletedAt = &now
		inst.UpdatedAt = now
		deleted = inst
		return nil
	})
	if err != nil {
		return nil, storageFailure(uc.log, "instance.delete", err, "vendor_id", vendorID, "instance_id", id)
	}
	return toInstanceResponse(deleted), nil
}

func (uc *InstanceUseCase) classify(inst *entity.EquipmentInstance, today time.Time) string {
	return classifyInstance(uc.classifier, inst, today)
}
