package equipment

import (
	"github.com/google/uuid"
	"github.com/jhoicas/FireSafety-api/internal/domain"
	"github.com/jhoicas/FireSafety-api/pkg/logger"
)

// storageFailure deja pasar los errores de negocio y convierte el resto en ErrTransactionFailure,
// registrando la operación y los ids involucrados (pares clave, valor).
func storageFailure(log *logger.Logger, op string, err error, kv ...string) error {
	if err == nil {
		return nil
	}
	if domain.IsBusinessError(err) {
		return err
	}
	log.Op(op, kv...).Error().Err(err).Msg("fallo de almacenamiento")
	return domain.ErrTransactionFailure
}

func validateID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.NewValidationError(field, "debe ser un UUID válido")
	}
	return nil
}

func validationDate(field string) error {
	return domain.NewValidationError(field, "debe tener formato YYYY-MM-DD")
}
