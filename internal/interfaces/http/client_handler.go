package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/FireSafety-api/internal/application/dto"
)

type clientService interface {
	Create(ctx context.Context, vendorID string, in dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetByID(ctx context.Context, vendorID, id string) (*dto.ClientResponse, error)
	List(ctx context.Context, vendorID string, q dto.ClientListQuery) (*dto.ClientListResponse, error)
	UpdateStatus(ctx context.Context, vendorID, id string, in dto.UpdateClientStatusRequest) (*dto.ClientResponse, error)
}

// ClientHandler maneja las peticiones HTTP de clientes (protegido).
type ClientHandler struct {
	uc clientService
}

// NewClientHandler construye el handler.
func NewClientHandler(uc clientService) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), vendorID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/clients?status=active&page=1&limit=20
func (h *ClientHandler) List(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	var q dto.ClientListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), vendorID, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
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

// UpdateStatus PATCH /api/clients/:id/status
func (h *ClientHandler) UpdateStatus(c *fiber.Ctx) error {
	vendorID, ok := requireVendor(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	var in dto.UpdateClientStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), vendorID, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
