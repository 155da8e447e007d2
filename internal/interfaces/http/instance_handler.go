package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/FireSafety-api/internal/application/dto"
)

type instanceService interface {
	Create(ctx context.Context, vendorID string, in dto.CreateInstanceRequest) (*dto.InstanceResponse, error)
	Update(ctx context.Context, vendorID, id string, in dto.UpdateInstanceRequest) (*dto.InstanceResponse, error)
	Delete(ctx context.Context, vendorID, id string) (*dto.InstanceResponse, error)
}

type instanceQueryService interface {
	List(ctx context.Context, vendorID string, q dto.InstanceListQuery) (*dto.InstanceListResponse, error)
	GetDetail(ctx context.Context, vendorID, id string) (*dto.InstanceDetailResponse, error)
	Related(ctx context.Context, vendorID, id string) ([]dto.InstanceResponse, error)
	AssignmentHistory(ctx context.Context, vendorID, id string) ([]dto.AssignmentHistoryResponse, error)
	MaintenanceHistory(ctx context.Context, vendorID, id string) ([]dto.MaintenanceTicketResponse, error)
}

// InstanceHandler instancias físicas de equipo: alta, edición, baja y lecturas.
type InstanceHandler struct {
	uc    instanceService
	query instanceQueryService
}

// NewInstanceHandler construye el handler.
func NewInstanceHandler(uc instanceService, query instanceQueryService) *InstanceHandler {
	return &InstanceHandler{uc: uc, query: query}
}

// List godoc
// @Summary      Listar instancias de equipo
// @Tags         equipment
// @Produce      json
// @Param        status             query  string  false  "available | assigned | maintenance | retired"
// @Param        compliance_status  query  string  false  "compliant | due_soon | overdue | expired"
// @Param        search             query  string  false  "serial, nombre o código del tipo"
// @Param        equipment_type_id  query  string  false  "UUID del tipo"
// @Param        page               query  int     false  "página (desde 1)"
// @Param        limit              query  int     false  "1..100"
// @Success      200  {object}  dto.InstanceListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/equipment/instances [get]
func (h *InstanceHandler) List(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	var q dto.InstanceListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidQuery(c)
	}
	out, err := h.query.List(c.UserContext(), vendorID, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar instancia de equipo
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInstanceRequest  true  "tipo, serial, fecha de compra"
// @Success      201  {object}  dto.InstanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/equipment/instances [post]
func (h *InstanceHandler) Create(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	var in dto.CreateInstanceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), vendorID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/equipment/instances/:id (detalle con tipo, cliente e historiales)
func (h *InstanceHandler) GetByID(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	out, err := h.query.GetDetail(c.UserContext(), vendorID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/equipment/instances/:id
func (h *InstanceHandler) Update(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	var in dto.UpdateInstanceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), vendorID, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/equipment/instances/:id (baja lógica; falla si está asignada)
func (h *InstanceHandler) Delete(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Delete(c.UserContext(), vendorID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Related GET /api/equipment/instances/:id/related
func (h *InstanceHandler) Related(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	out, err := h.query.Related(c.UserContext(), vendorID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// Assignments GET /api/equipment/instances/:id/assignments
func (h *InstanceHandler) Assignments(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	out, err := h.query.AssignmentHistory(c.UserContext(), vendorID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// Maintenance GET /api/equipment/instances/:id/maintenance
func (h *InstanceHandler) Maintenance(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	out, err := h.query.MaintenanceHistory(c.UserContext(), vendorID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}
