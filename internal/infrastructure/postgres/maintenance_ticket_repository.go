package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
)

var _ repository.MaintenanceTicketRepository = (*MaintenanceTicketRepo)(nil)

// MaintenanceTicketRepo lectura de tickets de mantenimiento.
type MaintenanceTicketRepo struct {
	q Querier
}

// NewMaintenanceTicketRepository construye el adaptador.
func NewMaintenanceTicketRepository(q Querier) *MaintenanceTicketRepo {
	return &MaintenanceTicketRepo{q: q}
}

// ListByInstance tickets de la instancia, más recientes primero.
func (r *MaintenanceTicketRepo) ListByInstance(ctx context.Context, instanceID, vendorID string, limit int) ([]*entity.MaintenanceTicket, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, ticket_number, equipment_instance_id, vendor_id, client_id, status, priority,
		       issue_description, scheduled_date, completed_date, created_at
		FROM maintenance_tickets
		WHERE equipment_instance_id = $1 AND vendor_id = $2
		ORDER BY created_at DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, instanceID, vendorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list maintenance tickets: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.MaintenanceTicket, 0)
	for rows.Next() {
		var t entity.MaintenanceTicket
		if err := rows.Scan(&t.ID, &t.TicketNumber, &t.EquipmentInstanceID, &t.VendorID, &t.ClientID, &t.Status,
			&t.Priority, &t.IssueDescription, &t.ScheduledDate, &t.CompletedDate, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan maintenance ticket: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// CountOpenByInstance cuenta tickets open o in_progress de la instancia.
func (r *MaintenanceTicketRepo) CountOpenByInstance(ctx context.Context, instanceID, vendorID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM maintenance_tickets
		WHERE equipment_instance_id = $1 AND vendor_id = $2 AND status IN ('open', 'in_progress')`,
		instanceID, vendorID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open maintenance tickets: %w", err)
	}
	return n, nil
}
