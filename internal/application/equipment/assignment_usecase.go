package equipment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jhoicas/FireSafety-api/internal/application/dto"
	"github.com/jhoicas/FireSafety-api/internal/domain"
	"github.com/jhoicas/FireSafety-api/internal/domain/compliance"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
	"github.com/jhoicas/FireSafety-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// AssignmentUseCase orquesta asignaciones individuales, masivas y su retiro.
// Cada operación es una única transacción: se inserta primero y el UPDATE final sobre la instancia
// lleva el estado esperado en su predicado; 0 filas afectadas revierte todo.
type AssignmentUseCase struct {
	txRunner TxRunner
	clients  repository.ClientRepository
	notifier Notifier
	cfg      Config
	log      *logger.Logger
}

// NewAssignmentUseCase construye el caso de uso. notifier nil = sin notificaciones.
func NewAssignmentUseCase(
	txRunner TxRunner,
	clients repository.ClientRepository,
	notifier Notifier,
	cfg Config,
	log *logger.Logger,
) *AssignmentUseCase {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &AssignmentUseCase{
		txRunner: txRunner,
		clients:  clients,
		notifier: notifier,
		cfg:      cfg,
		log:      log.Named("equipment.assignments"),
	}
}

// AssignSingle asigna una instancia a un cliente activo del proveedor.
// Devuelve ErrNotFound si la instancia no existe, es de otro proveedor o no está available.
func (uc *AssignmentUseCase) AssignSingle(ctx context.Context, vendorID, instanceID string, in dto.AssignInstanceRequest) (*dto.AssignmentResponse, error) {
	if err := validateID("id", instanceID); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.NewValidationError("unit_cost", "no puede ser negativo")
	}
	total := in.UnitCost
	if in.TotalCost != nil {
		if in.TotalCost.IsNegative() {
			return nil, domain.NewValidationError("total_cost", "no puede ser negativo")
		}
		total = *in.TotalCost
	}

	ctx, cancel := uc.cfg.withTimeout(ctx)
	defer cancel()

	if err := uc.checkClient(ctx, "assignment.single", vendorID, in.ClientID); err != nil {
		return nil, err
	}

	now := uc.cfg.now()
	a := &entity.EquipmentAssignment{
		VendorID:       vendorID,
		ClientID:       in.ClientID,
		Status:         entity.AssignmentStatusActive,
		TotalCost:      total,
		AssignmentDate: compliance.Day(now),
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	item := &entity.AssignmentItem{
		EquipmentInstanceID: instanceID,
		Quantity:            1,
		UnitCost:            in.UnitCost,
		TotalCost:           total,
		CreatedAt:           now,
	}

	err := uc.runNumbered(ctx, "assignment.single", a, func(instances repository.EquipmentInstanceRepository, assignments repository.AssignmentRepository) error {
		if err := assignments.Create(ctx, a); err != nil {
			return err
		}
		item.ID = uuid.New().String()
		item.AssignmentID = a.ID
		if err := assignments.CreateItem(ctx, item); err != nil {
			return err
		}
		n, err := instances.MarkAssigned(ctx, instanceID, vendorID, in.ClientID, now)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, storageFailure(uc.log, "assignment.single", err,
			"vendor_id", vendorID, "instance_id", instanceID, "client_id", in.ClientID, "assignment_id", a.ID)
	}

	uc.notify(ctx, a, []string{instanceID})
	return toAssignmentResponse(a, []*entity.AssignmentItem{item}), nil
}

// AssignBulk asigna varias instancias con una sola asignación y un UPDATE por lotes.
// Todas deben pertenecer al proveedor y estar available; si alguna no lo está no se aplica nada
// (ErrInstanceUnavailable).
func (uc *AssignmentUseCase) AssignBulk(ctx context.Context, vendorID string, in dto.BulkAssignRequest) (*dto.BulkAssignResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.NewValidationError("unit_cost", "no puede ser negativo")
	}
	now := uc.cfg.now()
	assignmentDate := compliance.Day(now)
	if in.AssignmentDate != "" {
		d, err := parseDate("assignment_date", in.AssignmentDate)
		if err != nil {
			return nil, err
		}
		assignmentDate = d
	}

	ctx, cancel := uc.cfg.withTimeout(ctx)
	defer cancel()

	if err := uc.checkClient(ctx, "assignment.bulk", vendorID, in.ClientID); err != nil {
		return nil, err
	}

	count := len(in.InstanceIDs)
	a := &entity.EquipmentAssignment{
		VendorID:       vendorID,
		ClientID:       in.ClientID,
		Status:         entity.AssignmentStatusActive,
		TotalCost:      in.UnitCost.Mul(decimal.NewFromInt(int64(count))),
		AssignmentDate: assignmentDate,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := uc.runNumbered(ctx, "assignment.bulk", a, func(instances repository.EquipmentInstanceRepository, assignments repository.AssignmentRepository) error {
		if err := assignments.Create(ctx, a); err != nil {
			return err
		}
		for _, id := range in.InstanceIDs {
			err := assignments.CreateItem(ctx, &entity.AssignmentItem{
				ID:                  uuid.New().String(),
				AssignmentID:        a.ID,
				EquipmentInstanceID: id,
				Quantity:            1,
				UnitCost:            in.UnitCost,
				TotalCost:           in.UnitCost,
				CreatedAt:           now,
			})
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrInstanceUnavailable
			}
			if err != nil {
				return err
			}
		}
		n, err := instances.MarkAssignedBulk(ctx, in.InstanceIDs, vendorID, in.ClientID, now)
		if err != nil {
			return err
		}
		if n != int64(count) {
			return domain.ErrInstanceUnavailable
		}
		return nil
	})
	if err != nil {
		return nil, storageFailure(uc.log, "assignment.bulk", err,
			"vendor_id", vendorID, "client_id", in.ClientID, "assignment_id", a.ID)
	}

	uc.notify(ctx, a, in.InstanceIDs)
	return &dto.BulkAssignResponse{AssignmentID: a.ID, AssignmentNumber: a.AssignmentNumber, Count: count}, nil
}

// RemoveAssignment devuelve la instancia a available, borra sus ítems y marca inactive
// las asignaciones del proveedor que quedaron sin ítems.
func (uc *AssignmentUseCase) RemoveAssignment(ctx context.Context, vendorID, instanceID string) (*dto.RemoveAssignmentResponse, error) {
	if err := validateID("id", instanceID); err != nil {
		return nil, err
	}
	ctx, cancel := uc.cfg.withTimeout(ctx)
	defer cancel()

	var clientID string
	err := uc.txRunner.Run(ctx, func(instances repository.EquipmentInstanceRepository, assignments repository.AssignmentRepository) error {
		inst, err := instances.GetForUpdate(ctx, instanceID, vendorID)
		if err != nil {
			return err
		}
		if inst == nil {
			return domain.ErrNotFound
		}
		if inst.Status != entity.InstanceStatusAssigned || inst.AssignedTo == nil {
			return domain.ErrNotAssigned
		}
		clientID = *inst.AssignedTo

		if _, err := assignments.DeleteItemsByInstance(ctx, instanceID); err != nil {
			return err
		}
		now := uc.cfg.now()
		n, err := instances.MarkAvailable(ctx, instanceID, vendorID, now)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotAssigned
		}
		swept, err := assignments.DeactivateOrphans(ctx, vendorID, now)
		if err != nil {
			return err
		}
		uc.log.Debug().Str("instance_id", instanceID).Int64("orphans", swept).Msg("asignación retirada")
		return nil
	})
	if err != nil {
		return nil, storageFailure(uc.log, "assignment.remove", err, "vendor_id", vendorID, "instance_id", instanceID)
	}
	return &dto.RemoveAssignmentResponse{Success: true, ClientID: clientID}, nil
}

// runNumbered ejecuta fn en una transacción con un número de asignación nuevo.
// Ante ErrDuplicateAssignmentNumber (otro escritor tomó el mismo número) repite la transacción completa.
func (uc *AssignmentUseCase) runNumbered(
	ctx context.Context,
	op string,
	a *entity.EquipmentAssignment,
	fn func(instances repository.EquipmentInstanceRepository, assignments repository.AssignmentRepository) error,
) error {
	var err error
	for attempt := 1; attempt <= uc.cfg.attempts(); attempt++ {
		err = uc.txRunner.Run(ctx, func(instances repository.EquipmentInstanceRepository, assignments repository.AssignmentRepository) error {
			number, err := NextAssignmentNumber(ctx, assignments, a.CreatedAt)
			if err != nil {
				return err
			}
			a.ID = uuid.New().String()
			a.AssignmentNumber = number
			return fn(instances, assignments)
		})
		if !errors.Is(err, domain.ErrDuplicateAssignmentNumber) {
			return err
		}
		uc.log.Warn().Str("op", op).Str("assignment_number", a.AssignmentNumber).Int("attempt", attempt).
			Msg("colisión de número de asignación, reintentando")
	}
	return err
}

func (uc *AssignmentUseCase) checkClient(ctx context.Context, op, vendorID, clientID string) error {
	client, err := uc.clients.GetByID(ctx, clientID, vendorID)
	if err != nil {
		return storageFailure(uc.log, op, err, "vendor_id", vendorID, "client_id", clientID)
	}
	if !client.IsAssignable(vendorID) {
		return domain.ErrClientNotEligible
	}
	return nil
}

func (uc *AssignmentUseCase) notify(ctx context.Context, a *entity.EquipmentAssignment, instanceIDs []string) {
	uc.notifier.AssignmentCreated(context.WithoutCancel(ctx), AssignmentEvent{
		AssignmentID:     a.ID,
		AssignmentNumber: a.AssignmentNumber,
		VendorID:         a.VendorID,
		ClientID:         a.ClientID,
		InstanceIDs:      append([]string(nil), instanceIDs...),
		TotalCost:        a.TotalCost,
		CreatedAt:        a.CreatedAt,
	})
}
