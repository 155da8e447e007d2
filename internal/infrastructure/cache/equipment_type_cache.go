package cache

import (
	"context"
	"time"

	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
	gocache "github.com/patrickmn/go-cache"
)

var _ repository.EquipmentTypeRepository = (*EquipmentTypeCache)(nil)

// EquipmentTypeCache decora un EquipmentTypeRepository cacheando GetByID en memoria.
// Las escrituras invalidan la entrada; los listados van siempre al repositorio.
type EquipmentTypeCache struct {
	next  repository.EquipmentTypeRepository
	store *gocache.Cache
}

// NewEquipmentTypeCache construye el decorador. ttl <= 0 desactiva el cache.
func NewEquipmentTypeCache(next repository.EquipmentTypeRepository, ttl time.Duration) repository.EquipmentTypeRepository {
	if ttl <= 0 {
		return next
	}
	return &EquipmentTypeCache{next: next, store: gocache.New(ttl, 2*ttl)}
}

func key(vendorID, id string) string {
	return vendorID + ":" + id
}

// GetByID devuelve una copia de la entrada cacheada o consulta el repositorio.
// Los "no encontrado" no se cachean.
func (c *EquipmentTypeCache) GetByID(ctx context.Context, id, vendorID string) (*entity.EquipmentType, error) {
	if v, ok := c.store.Get(key(vendorID, id)); ok {
		t := *v.(*entity.EquipmentType)
		return &t, nil
	}
	t, err := c.next.GetByID(ctx, id, vendorID)
	if err != nil || t == nil {
		return t, err
	}
	cp := *t
	c.store.SetDefault(key(vendorID, id), &cp)
	return t, nil
}

func (c *EquipmentTypeCache) Create(ctx context.Context, t *entity.EquipmentType) error {
	return c.next.Create(ctx, t)
}

func (c *EquipmentTypeCache) ListByVendor(ctx context.Context, vendorID string, limit, offset int) ([]*entity.EquipmentType, int, error) {
	return c.next.ListByVendor(ctx, vendorID, limit, offset)
}

func (c *EquipmentTypeCache) Update(ctx context.Context, t *entity.EquipmentType) (int64, error) {
	c.store.Delete(key(t.VendorID, t.ID))
	return c.next.Update(ctx, t)
}

func (c *EquipmentTypeCache) SoftDelete(ctx context.Context, id, vendorID string, at time.Time) (int64, error) {
	c.store.Delete(key(vendorID, id))
	return c.next.SoftDelete(ctx, id, vendorID, at)
}
