package repository

import (
	"context"

	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
)

// MaintenanceTicketRepository lectura de tickets de mantenimiento (los escribe otro servicio).
type MaintenanceTicketRepository interface {
	ListByInstance(ctx context.Context, instanceID, vendorID string, limit int) ([]*entity.MaintenanceTicket, error)
	CountOpenByInstance(ctx context.Context, instanceID, vendorID string) (int, error)
}
