package equipment

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/FireSafety-api/internal/domain/assignment"
	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
)

// NextAssignmentNumber calcula el siguiente ASG-YYYYMMDD-NNN contando las asignaciones del día.
// Dos escritores concurrentes pueden obtener el mismo número: el índice único lo rechaza
// (domain.ErrDuplicateAssignmentNumber) y el llamador reintenta la transacción completa.
func NextAssignmentNumber(ctx context.Context, repo repository.AssignmentRepository, at time.Time) (string, error) {
	n, err := repo.CountByNumberPrefix(ctx, assignment.DayPrefix(at))
	if err != nil {
		return "", fmt.Errorf("contar asignaciones del día: %w", err)
	}
	return assignment.FormatNumber(at, n+1), nil
}
