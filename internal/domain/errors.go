package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrTransactionFailure = errors.New("error interno de almacenamiento")

	// Ciclo de vida de instancias y asignaciones.
	ErrDuplicateSerialNumber     = errors.New("el número de serie ya existe")
	ErrHasActiveAssignment       = errors.New("la instancia tiene una asignación activa")
	ErrNotAssigned               = errors.New("la instancia no está asignada")
	ErrDuplicateAssignmentNumber = errors.New("número de asignación duplicado")
	ErrClientNotEligible         = errors.New("el cliente no está activo o no pertenece al proveedor")
	ErrInstanceUnavailable       = errors.New("una o más instancias no están disponibles")
)

// ValidationError describe un campo inválido. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsBusinessError indica si err es un error de dominio que debe llegar tal cual al llamador.
func IsBusinessError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrConflict, ErrForbidden, ErrUnauthorized,
		ErrDuplicateSerialNumber, ErrHasActiveAssignment, ErrNotAssigned,
		ErrDuplicateAssignmentNumber, ErrClientNotEligible, ErrInstanceUnavailable,
		ErrTransactionFailure,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
