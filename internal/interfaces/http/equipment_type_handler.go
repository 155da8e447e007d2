package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/FireSafety-api/internal/application/dto"
)

type equipmentTypeService interface {
	Create(ctx context.Context, vendorID string, in dto.CreateEquipmentTypeRequest) (*dto.EquipmentTypeResponse, error)
	GetByID(ctx context.Context, vendorID, id string) (*dto.EquipmentTypeResponse, error)
	List(ctx context.Context, vendorID string, page dto.PageRequest) (*dto.EquipmentTypeListResponse, error)
	Update(ctx context.Context, vendorID, id string, in dto.UpdateEquipmentTypeRequest) (*dto.EquipmentTypeResponse, error)
	Delete(ctx context.Context, vendorID, id string) error
}

// EquipmentTypeHandler catálogo de tipos de equipo (protegido).
type EquipmentTypeHandler struct {
	uc equipmentTypeService
}

// NewEquipmentTypeHandler construye el handler.
func NewEquipmentTypeHandler(uc equipmentTypeService) *EquipmentTypeHandler {
	return &EquipmentTypeHandler{uc: uc}
}

// Create POST /api/equipment-types
func (h *EquipmentTypeHandler) Create(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	var in dto.CreateEquipmentTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), vendorID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/equipment-types?page=1&limit=20
func (h *EquipmentTypeHandler) List(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), vendorID, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/equipment-types/:id
func (h *EquipmentTypeHandler) GetByID(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetByID(c.UserContext(), vendorID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/equipment-types/:id
func (h *EquipmentTypeHandler) Update(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	var in dto.UpdateEquipmentTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), vendorID, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/equipment-types/:id
func (h *EquipmentTypeHandler) Delete(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), vendorID, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
