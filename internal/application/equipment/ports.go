package equipment

import (
	"context"
	"time"

	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Rollback si fn devuelve error (o si el contexto vence), Commit en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		instances repository.EquipmentInstanceRepository,
		assignments repository.AssignmentRepository,
	) error) error
}

// AssignmentEvent datos publicados después de confirmar una asignación.
type AssignmentEvent struct {
	AssignmentID     string
	AssignmentNumber string
	VendorID         string
	ClientID         string
	InstanceIDs      []string
	TotalCost        decimal.Decimal
	CreatedAt        time.Time
}

// Notifier despacha notificaciones fuera de la transacción. No devuelve error: los fallos se registran.
type Notifier interface {
	AssignmentCreated(ctx context.Context, ev AssignmentEvent)
}

// Config parámetros del motor de equipos.
type Config struct {
	HorizonDays   int           // horizonte de "due_soon"
	Timeout       time.Duration // plazo por operación; 0 = sin plazo propio
	NumberRetries int           // intentos ante colisión del número de asignación
	Now           func() time.Time
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now().UTC()
	}
	return time.Now().UTC()
}

func (c Config) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.Timeout)
}

func (c Config) attempts() int {
	if c.NumberRetries < 1 {
		return 1
	}
	return c.NumberRetries
}

type nopNotifier struct{}

func (nopNotifier) AssignmentCreated(context.Context, AssignmentEvent) {}
