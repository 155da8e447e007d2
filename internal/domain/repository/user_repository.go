package repository

import (
	"context"

	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// VendorRepository define el puerto de persistencia para Vendor.
type VendorRepository interface {
	Create(ctx context.Context, v *entity.Vendor) error
}
