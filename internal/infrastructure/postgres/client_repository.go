package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/FireSafety-api/internal/domain"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, created_by_vendor_id, name, contact_name, email, phone, address, status, created_at, updated_at`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CreatedByVendorID, c.Name, c.ContactName, c.Email, c.Phone, c.Address, c.Status,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente del proveedor. nil, nil si no existe o es de otro proveedor.
func (r *ClientRepo) GetByID(ctx context.Context, id, vendorID string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND created_by_vendor_id = $2`
	c, err := scanClient(r.q.QueryRow(ctx, query, id, vendorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// ListByVendor lista clientes del proveedor, opcionalmente por estado, con el total.
func (r *ClientRepo) ListByVendor(ctx context.Context, vendorID, status string, limit, offset int) ([]*entity.Client, int, error) {
	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM clients WHERE created_by_vendor_id = $1 AND ($2 = '' OR status = $2)`,
		vendorID, status,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}
	query := `SELECT ` + clientColumns + `
		FROM clients
		WHERE created_by_vendor_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY name, id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, vendorID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// UpdateStatus cambia el estado del cliente. Devuelve filas afectadas.
func (r *ClientRepo) UpdateStatus(ctx context.Context, id, vendorID, status string, at time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE clients SET status = $3, updated_at = $4 WHERE id = $1 AND created_by_vendor_id = $2`,
		id, vendorID, status, at,
	)
	if err != nil {
		return 0, fmt.Errorf("update client status: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(&c.ID, &c.CreatedByVendorID, &c.Name, &c.ContactName, &c.Email, &c.Phone, &c.Address,
		&c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
