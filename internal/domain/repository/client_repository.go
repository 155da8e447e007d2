package repository

import (
	"context"
	"time"

	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client (siempre acotado al proveedor).
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, id, vendorID string) (*entity.Client, error)
	ListByVendor(ctx context.Context, vendorID, status string, limit, offset int) ([]*entity.Client, int, error)
	UpdateStatus(ctx context.Context, id, vendorID, status string, at time.Time) (int64, error)
}
