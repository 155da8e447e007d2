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

// ClientUseCase registro de clientes del proveedor.
type ClientUseCase struct {
	repo repository.ClientRepository
	now  func() time.Time
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo, now: time.Now}
}

// Create registra un cliente. Sin estado explícito queda active.
func (uc *ClientUseCase) Create(ctx context.Context, vendorID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.ClientStatusActive
	}
	now := uc.now().UTC()
	c := &entity.Client{
		ID:                uuid.New().String(),
		CreatedByVendorID: vendorID,
		Name:              strings.TrimSpace(in.Name),
		ContactName:       in.ContactName,
		Email:             strings.ToLower(in.Email),
		Phone:             in.Phone,
		Address:           in.Address,
		Status:            status,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// GetByID obtiene un cliente del proveedor.
func (uc *ClientUseCase) GetByID(ctx context.Context, vendorID, id string) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id, vendorID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(c), nil
}

// List lista clientes del proveedor, opcionalmente filtrados por estado.
func (uc *ClientUseCase) List(ctx context.Context, vendorID string, q dto.ClientListQuery) (*dto.ClientListResponse, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	page := q.PageRequest
	page.DefaultPage()
	list, total, err := uc.repo.ListByVendor(ctx, vendorID, q.Status, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// UpdateStatus cambia el estado del cliente. Un cliente no activo deja de ser elegible para asignaciones.
func (uc *ClientUseCase) UpdateStatus(ctx context.Context, vendorID, id string, in dto.UpdateClientStatusRequest) (*dto.ClientResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	n, err := uc.repo.UpdateStatus(ctx, id, vendorID, in.Status, uc.now().UTC())
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	return uc.GetByID(ctx, vendorID, id)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:          c.ID,
		VendorID:    c.CreatedByVendorID,
		Name:        c.Name,
		ContactName: c.ContactName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
