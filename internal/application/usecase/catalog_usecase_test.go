package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jhoicas/FireSafety-api/internal/application/dto"
	"github.com/jhoicas/FireSafety-api/internal/domain"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTypes struct {
	rows map[string]entity.EquipmentType
}

func (f *fakeTypes) Create(_ context.Context, t *entity.EquipmentType) error {
	for _, r := range f.rows {
		if r.VendorID == t.VendorID && r.Code == t.Code {
			return domain.ErrDuplicate
		}
	}
	f.rows[t.ID] = *t
	return nil
}

func (f *fakeTypes) GetByID(_ context.Context, id, vendorID string) (*entity.EquipmentType, error) {
	r, ok := f.rows[id]
	if !ok || r.VendorID != vendorID || r.DeletedAt != nil {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeTypes) ListByVendor(_ context.Context, vendorID string, limit, offset int) ([]*entity.EquipmentType, int, error) {
	var out []*entity.EquipmentType
	for _, r := range f.rows {
		if r.VendorID == vendorID && r.DeletedAt == nil {
			r := r
			out = append(out, &r)
		}
	}
	return out, len(out), nil
}

func (f *fakeTypes) Update(_ context.Context, t *entity.EquipmentType) (int64, error) {
	if _, ok := f.rows[t.ID]; !ok {
		return 0, nil
	}
	f.rows[t.ID] = *t
	return 1, nil
}

func (f *fakeTypes) SoftDelete(_ context.Context, id, vendorID string, at time.Time) (int64, error) {
	r, ok := f.rows[id]
	if !ok || r.VendorID != vendorID || r.DeletedAt != nil {
		return 0, nil
	}
	r.DeletedAt = &at
	f.rows[id] = r
	return 1, nil
}

type fakeClients struct {
	rows map[string]entity.Client
}

func (f *fakeClients) Create(_ context.Context, c *entity.Client) error {
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeClients) GetByID(_ context.Context, id, vendorID string) (*entity.Client, error) {
	r, ok := f.rows[id]
	if !ok || r.CreatedByVendorID != vendorID {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeClients) ListByVendor(_ context.Context, vendorID, status string, limit, offset int) ([]*entity.Client, int, error) {
	var out []*entity.Client
	for _, r := range f.rows {
		if r.CreatedByVendorID == vendorID && (status == "" || r.Status == status) {
			r := r
			out = append(out, &r)
		}
	}
	return out, len(out), nil
}

func (f *fakeClients) UpdateStatus(_ context.Context, id, vendorID, status string, at time.Time) (int64, error) {
	r, ok := f.rows[id]
	if !ok || r.CreatedByVendorID != vendorID {
		return 0, nil
	}
	r.Status = status
	r.UpdatedAt = at
	f.rows[id] = r
	return 1, nil
}

func TestEquipmentTypeUseCase_CRUD(t *testing.T) {
	repo := &fakeTypes{rows: map[string]entity.EquipmentType{}}
	uc := NewEquipmentTypeUseCase(repo)
	ctx := context.Background()

	created, err := uc.Create(ctx, "v1", dto.CreateEquipmentTypeRequest{
		Name: "Extintor CO2 5 lb", Code: " co2-5 ", Specifications: json.RawMessage(`{"agente":"CO2"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "CO2-5", created.Code)
	assert.Equal(t, entity.DefaultLifespanYears, created.DefaultLifespanYears)

	_, err = uc.Create(ctx, "v1", dto.CreateEquipmentTypeRequest{Name: "Otro", Code: "CO2-5"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.GetByID(ctx, "v2", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	years := 15
	updated, err := uc.Update(ctx, "v1", created.ID, dto.UpdateEquipmentTypeRequest{DefaultLifespanYears: &years})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.DefaultLifespanYears)
	assert.Equal(t, "Extintor CO2 5 lb", updated.Name)
	assert.JSONEq(t, `{"agente":"CO2"}`, string(updated.Specifications))

	list, err := uc.List(ctx, "v1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, dto.DefaultPageLimit, list.Page.Limit)

	require.NoError(t, uc.Delete(ctx, "v1", created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, "v1", created.ID), domain.ErrNotFound)
	_, err = uc.GetByID(ctx, "v1", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEquipmentTypeUseCase_Validacion(t *testing.T) {
	uc := NewEquipmentTypeUseCase(&fakeTypes{rows: map[string]entity.EquipmentType{}})
	_, err := uc.Create(context.Background(), "v1", dto.CreateEquipmentTypeRequest{Code: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	years := 0
	_, err = uc.Update(context.Background(), "v1", "id", dto.UpdateEquipmentTypeRequest{DefaultLifespanYears: &years})
	assert.ErrorIs(t, err, domain.ErrNotFound, "0 es omitempty: la validación pasa y el tipo no existe")
}

func TestClientUseCase(t *testing.T) {
	repo := &fakeClients{rows: map[string]entity.Client{}}
	uc := NewClientUseCase(repo)
	ctx := context.Background()

	c, err := uc.Create(ctx, "v1", dto.CreateClientRequest{Name: " Torre Norte ", Email: "ADMIN@torre.co"})
	require.NoError(t, err)
	assert.Equal(t, "Torre Norte", c.Name)
	assert.Equal(t, "admin@torre.co", c.Email)
	assert.Equal(t, entity.ClientStatusActive, c.Status)

	_, err = uc.Create(ctx, "v1", dto.CreateClientRequest{Name: "X", Status: "vip"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.UpdateStatus(ctx, "v1", c.ID, dto.UpdateClientStatusRequest{Status: entity.ClientStatusInactive})
	require.NoError(t, err)
	assert.Equal(t, entity.ClientStatusInactive, out.Status)

	_, err = uc.UpdateStatus(ctx, "v2", c.ID, dto.UpdateClientStatusRequest{Status: entity.ClientStatusActive})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, "v1", dto.ClientListQuery{Status: entity.ClientStatusActive})
	require.NoError(t, err)
	assert.Zero(t, list.Page.Total)
}
