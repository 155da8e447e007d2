package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/FireSafety-api/internal/application/equipment"
	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
)

var _ equipment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool TxBeginner) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Rollback también ante panic (que se relanza) y cuando vence el contexto.
func (r *TxRunner) Run(ctx context.Context, fn func(
	instances repository.EquipmentInstanceRepository,
	assignments repository.AssignmentRepository,
) error) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			return
		}
		if cerr := tx.Commit(ctx); cerr != nil {
			err = fmt.Errorf("commit transaction: %w", cerr)
		}
	}()

	err = fn(NewEquipmentInstanceRepository(tx), NewAssignmentRepository(tx))
	return err
}
