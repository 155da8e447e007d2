package equipment

import (
	"context"
	"time"

	"github.com/jhoicas/FireSafety-api/internal/application/dto"
	"github.com/jhoicas/FireSafety-api/internal/domain"
	"github.com/jhoicas/FireSafety-api/internal/domain/compliance"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
	"github.com/jhoicas/FireSafety-api/pkg/logger"
)

// Límites de las vistas de detalle.
const (
	DetailHistoryLimit = 10
	HistoryLimit       = 50
	RelatedLimit       = 10
)

// QueryUseCase lecturas de instancias: listado filtrado, detalle, relacionadas e historiales.
// compliance_status se recalcula con el reloj inyectado en cada lectura.
type QueryUseCase struct {
	query       repository.EquipmentInstanceQueryRepository
	assignments repository.AssignmentRepository
	tickets     repository.MaintenanceTicketRepository
	classifier  compliance.Classifier
	cfg         Config
	log         *logger.Logger
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	query repository.EquipmentInstanceQueryRepository,
	assignments repository.AssignmentRepository,
	tickets repository.MaintenanceTicketRepository,
	cfg Config,
	log *logger.Logger,
) *QueryUseCase {
	return &QueryUseCase{
		query:       query,
		assignments: assignments,
		tickets:     tickets,
		classifier:  compliance.NewClassifier(cfg.HorizonDays),
		cfg:         cfg,
		log:         log.Named("equipment.query"),
	}
}

// List devuelve la página pedida y el total de instancias que cumplen los filtros.
func (uc *QueryUseCase) List(ctx context.Context, vendorID string, q dto.InstanceListQuery) (*dto.InstanceListResponse, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	page := q.PageRequest
	page.DefaultPage()

	ctx, cancel := uc.cfg.withTimeout(ctx)
	defer cancel()

	now := uc.cfg.now()
	list, total, err := uc.query.List(ctx, vendorID, repository.InstanceFilter{
		Status:           q.Status,
		ComplianceStatus: q.ComplianceStatus,
		Search:           q.Search,
		EquipmentTypeID:  q.EquipmentTypeID,
		Today:            compliance.Day(now),
		HorizonDays:      uc.classifier.HorizonDays(),
		Limit:            page.Limit,
		Offset:           page.Offset(),
	})
	if err != nil {
		return nil, storageFailure(uc.log, "instance.list", err, "vendor_id", vendorID)
	}
	items := make([]dto.InstanceResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *uc.viewResponse(v, now))
	}
	return &dto.InstanceListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// GetDetail devuelve la instancia con su tipo, el cliente asignado y los historiales recientes.
func (uc *QueryUseCase) GetDetail(ctx context.Context, vendorID, id string) (*dto.InstanceDetailResponse, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	ctx, cancel := uc.cfg.withTimeout(ctx)
	defer cancel()

	v, err := uc.getView(ctx, "instance.detail", vendorID, id)
	if err != nil {
		return nil, err
	}
	history, err := uc.assignments.ListHistoryByInstance(ctx, id, vendorID, DetailHistoryLimit)
	if err != nil {
		return nil, storageFailure(uc.log, "instance.detail", err, "vendor_id", vendorID, "instance_id", id)
	}
	tickets, err := uc.tickets.ListByInstance(ctx, id, vendorID, HistoryLimit)
	if err != nil {
		return nil, storageFailure(uc.log, "instance.detail", err, "vendor_id", vendorID, "instance_id", id)
	}
	open, err := uc.tickets.CountOpenByInstance(ctx, id, vendorID)
	if err != nil {
		return nil, storageFailure(uc.log, "instance.detail", err, "vendor_id", vendorID, "instance_id", id)
	}

	out := &dto.InstanceDetailResponse{
		InstanceResponse: *uc.viewResponse(v, uc.cfg.now()),
		OpenTickets:      open,
		Assignments:      make([]dto.AssignmentHistoryResponse, 0, len(history)),
		Maintenance:      make([]dto.MaintenanceTicketResponse, 0, len(tickets)),
	}
	for _, h := range history {
		out.Assignments = append(out.Assignments, toHistoryResponse(h))
	}
	for _, t := range tickets {
		out.Maintenance = append(out.Maintenance, toTicketResponse(t))
	}
	return out, nil
}

// Related lista instancias del mismo tipo y proveedor, excluyendo la consultada.
func (uc *QueryUseCase) Related(ctx context.Context, vendorID, id string) ([]dto.InstanceResponse, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	ctx, cancel := uc.cfg.withTimeout(ctx)
	defer cancel()

	v, err := uc.getView(ctx, "instance.related", vendorID, id)
	if err != nil {
		return nil, err
	}
	list, err := uc.query.ListRelated(ctx, &v.EquipmentInstance, RelatedLimit)
	if err != nil {
		return nil, storageFailure(uc.log, "instance.related", err, "vendor_id", vendorID, "instance_id", id)
	}
	now := uc.cfg.now()
	out := make([]dto.InstanceResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *uc.viewResponse(r, now))
	}
	return out, nil
}

// AssignmentHistory historial de asignaciones de la instancia, más reciente primero.
// Solo incluye asignaciones cuyo ítem sigue existiendo: retirar una asignación borra el ítem.
func (uc *QueryUseCase) AssignmentHistory(ctx context.Context, vendorID, id string) ([]dto.AssignmentHistoryResponse, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	ctx, cancel := uc.cfg.withTimeout(ctx)
	defer cancel()

	if _, err := uc.getView(ctx, "instance.assignments", vendorID, id); err != nil {
		return nil, err
	}
	history, err := uc.assignments.ListHistoryByInstance(ctx, id, vendorID, HistoryLimit)
	if err != nil {
		return nil, storageFailure(uc.log, "instance.assignments", err, "vendor_id", vendorID, "instance_id", id)
	}
	out := make([]dto.AssignmentHistoryResponse, 0, len(history))
	for _, h := range history {
		out = append(out, toHistoryResponse(h))
	}
	return out, nil
}

// MaintenanceHistory tickets de mantenimiento de la instancia.
func (uc *QueryUseCase) MaintenanceHistory(ctx context.Context, vendorID, id string) ([]dto.MaintenanceTicketResponse, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	ctx, cancel := uc.cfg.withTimeout(ctx)
	defer cancel()

	if _, err := uc.getView(ctx, "instance.maintenance", vendorID, id); err != nil {
		return nil, err
	}
	tickets, err := uc.tickets.ListByInstance(ctx, id, vendorID, HistoryLimit)
	if err != nil {
		return nil, storageFailure(uc.log, "instance.maintenance", err, "vendor_id", vendorID, "instance_id", id)
	}
	out := make([]dto.MaintenanceTicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toTicketResponse(t))
	}
	return out, nil
}

func (uc *QueryUseCase) getView(ctx context.Context, op, vendorID, id string) (*entity.EquipmentInstanceView, error) {
	v, err := uc.query.GetView(ctx, id, vendorID)
	if err != nil {
		return nil, storageFailure(uc.log, op, err, "vendor_id", vendorID, "instance_id", id)
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (uc *QueryUseCase) viewResponse(v *entity.EquipmentInstanceView, now time.Time) *dto.InstanceResponse {
	v.ComplianceStatus = classifyInstance(uc.classifier, &v.EquipmentInstance, now)
	return toInstanceViewResponse(v)
}
