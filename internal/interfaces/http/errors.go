package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/FireSafety-api/internal/application/dto"
	"github.com/jhoicas/FireSafety-api/internal/domain"
)

// errorMapping traduce un error de dominio a status y código HTTP. El orden importa:
// los errores más específicos van primero.
var errorMapping = []struct {
	target  error
	status  int
	code    string
	message string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrDuplicateSerialNumber, fiber.StatusConflict, "DUPLICATE_SERIAL", "el número de serie ya existe"},
	{domain.ErrHasActiveAssignment, fiber.StatusConflict, "HAS_ACTIVE_ASSIGNMENT", "la instancia tiene una asignación activa"},
	{domain.ErrNotAssigned, fiber.StatusConflict, "NOT_ASSIGNED", "la instancia no está asignada"},
	{domain.ErrDuplicateAssignmentNumber, fiber.StatusConflict, "DUPLICATE_ASSIGNMENT_NUMBER", "no se pudo generar un número de asignación único, reintente"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "el recurso ya existe"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "el recurso cambió durante la operación, reintente"},
	{domain.ErrClientNotEligible, fiber.StatusUnprocessableEntity, "CLIENT_NOT_ELIGIBLE", "el cliente no está activo o no pertenece al proveedor"},
	{domain.ErrInstanceUnavailable, fiber.StatusUnprocessableEntity, "INSTANCE_UNAVAILABLE", "una o más instancias no están disponibles"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "cuenta inactiva o suspendida"},
}

// writeError responde con el status y código del error. Los errores no mapeados son 500 sin detalle.
func writeError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: verr.Error(), Field: verr.Field})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno, intente más tarde"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func invalidQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
}

// requireVendor devuelve el vendor del token o responde 401.
func requireVendor(c *fiber.Ctx) (string, bool) {
	vendorID := GetVendorID(c)
	if vendorID == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
		return "", false
	}
	return vendorID, true
}

// paramID valida el parámetro :id como UUID o responde 400.
func paramID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		_ = writeError(c, domain.NewValidationError("id", "debe ser un UUID válido"))
		return "", false
	}
	return id, true
}
