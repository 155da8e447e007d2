package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/FireSafety-api/internal/application/dto"
	"github.com/jhoicas/FireSafety-api/internal/domain"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
)

// EquipmentTypeUseCase casos de uso CRUD del catálogo de tipos de equipo.
// El código y la identidad no cambian después de creado.
type EquipmentTypeUseCase struct {
	repo repository.EquipmentTypeRepository
	now  func() time.Time
}

// NewEquipmentTypeUseCase construye el caso de uso.
func NewEquipmentTypeUseCase(repo repository.EquipmentTypeRepository) *EquipmentTypeUseCase {
	return &EquipmentTypeUseCase{repo: repo, now: time.Now}
}

// Create crea un tipo de equipo. Devuelve ErrDuplicate si el código ya existe para el proveedor.
func (uc *EquipmentTypeUseCase) Create(ctx context.Context, vendorID string, in dto.CreateEquipmentTypeRequest) (*dto.EquipmentTypeResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	lifespan := in.DefaultLifespanYears
	if lifespan <= 0 {
		lifespan = entity.DefaultLifespanYears
	}
	now := uc.now().UTC()
	t := &entity.EquipmentType{
		ID:                   uuid.New().String(),
		VendorID:             vendorID,
		Name:                 strings.TrimSpace(in.Name),
		Code:                 strings.ToUpper(strings.TrimSpace(in.Code)),
		Manufacturer:         in.Manufacturer,
		Model:                in.Model,
		DefaultLifespanYears: lifespan,
		Specifications:       in.Specifications,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toEquipmentTypeResponse(t), nil
}

// GetByID obtiene un tipo del proveedor. ErrNotFound si no existe o es de otro proveedor.
func (uc *EquipmentTypeUseCase) GetByID(ctx context.Context, vendorID, id string) (*dto.EquipmentTypeResponse, error) {
	t, err := uc.repo.GetByID(ctx, id, vendorID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toEquipmentTypeResponse(t), nil
}

// List lista los tipos del proveedor con paginación.
func (uc *EquipmentTypeUseCase) List(ctx context.Context, vendorID string, page dto.PageRequest) (*dto.EquipmentTypeListResponse, error) {
	if err := dto.Validate(page); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, total, err := uc.repo.ListByVendor(ctx, vendorID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.EquipmentTypeResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toEquipmentTypeResponse(t))
	}
	return &dto.EquipmentTypeListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// Update actualiza los campos descriptivos. Los omitidos conservan su valor.
func (uc *EquipmentTypeUseCase) Update(ctx context.Context, vendorID, id string, in dto.UpdateEquipmentTypeRequest) (*dto.EquipmentTypeResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	t, err := uc.repo.GetByID(ctx, id, vendorID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.Manufacturer != nil {
		t.Manufacturer = *in.Manufacturer
	}
	if in.Model != nil {
		t.Model = *in.Model
	}
	if in.DefaultLifespanYears != nil {
		t.DefaultLifespanYears = *in.DefaultLifespanYears
	}
	if len(in.Specifications) > 0 {
		t.Specifications = in.Specifications
	}
	t.UpdatedAt = uc.now().UTC()
	n, err := uc.repo.Update(ctx, t)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	return toEquipmentTypeResponse(t), nil
}

// Delete elimina lógicamente el tipo. Las instancias existentes conservan la referencia.
func (uc *EquipmentTypeUseCase) Delete(ctx context.Context, vendorID, id string) error {
	n, err := uc.repo.SoftDelete(ctx, id, vendorID, uc.now().UTC())
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toEquipmentTypeResponse(t *entity.EquipmentType) *dto.EquipmentTypeResponse {
	if t == nil {
		return nil
	}
	return &dto.EquipmentTypeResponse{
		ID:                   t.ID,
		VendorID:             t.VendorID,
		Name:                 t.Name,
		Code:                 t.Code,
		Manufacturer:         t.Manufacturer,
		Model:                t.Model,
		DefaultLifespanYears: t.DefaultLifespanYears,
		Specifications:       t.Specifications,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}
