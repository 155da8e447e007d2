package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/FireSafety-api/internal/application/dto"
)

type assignmentService interface {
	AssignSingle(ctx context.Context, vendorID, instanceID string, in dto.AssignInstanceRequest) (*dto.AssignmentResponse, error)
	AssignBulk(ctx context.Context, vendorID string, in dto.BulkAssignRequest) (*dto.BulkAssignResponse, error)
	RemoveAssignment(ctx context.Context, vendorID, instanceID string) (*dto.RemoveAssignmentResponse, error)
}

// AssignmentHandler asignación y retiro de instancias a clientes.
type AssignmentHandler struct {
	uc assignmentService
}

// NewAssignmentHandler construye el handler.
func NewAssignmentHandler(uc assignmentService) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

// Assign godoc
// @Summary      Asignar instancia a un cliente
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "UUID de la instancia"
// @Param        body  body  dto.AssignInstanceRequest  true  "cliente y costos"
// @Success      201  {object}  dto.AssignmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/equipment/instances/{id}/assign [post]
func (h *AssignmentHandler) Assign(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	var in dto.AssignInstanceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AssignSingle(c.UserContext(), vendorID, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Bulk godoc
// @Summary      Asignar varias instancias en una sola asignación
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAssignRequest  true  "cliente, instancias y costo unitario"
// @Success      201  {object}  dto.BulkAssignResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/equipment/assignments/bulk [post]
func (h *AssignmentHandler) Bulk(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	var in dto.BulkAssignRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AssignBulk(c.UserContext(), vendorID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Remove DELETE /api/equipment/instances/:id/assignment
func (h *AssignmentHandler) Remove(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	out, err := h.uc.RemoveAssignment(c.UserContext(), vendorID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
