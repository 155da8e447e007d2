package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          authService
	EquipmentTypeUC equipmentTypeService
	ClientUC        clientService
	InstanceUC      instanceService
	QueryUC         instanceQueryService
	AssignmentUC    assignmentService
	JWTSecret       string
	RateLimitRPS    float64
	RateLimitBurst  int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RateLimit(deps.RateLimitRPS, deps.RateLimitBurst))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token); escrituras solo admin o vendor
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writer := RequireRole(entity.RoleAdmin, entity.RoleVendor)

	types := protected.Group("/equipment-types")
	typeHandler := NewEquipmentTypeHandler(deps.EquipmentTypeUC)
	types.Get("/", typeHandler.List)
	types.Post("/", writer, typeHandler.Create)
	types.Get("/:id", typeHandler.GetByID)
	types.Put("/:id", writer, typeHandler.Update)
	types.Delete("/:id", writer, typeHandler.Delete)

	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", writer, clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Patch("/:id/status", writer, clientHandler.UpdateStatus)

	instances := protected.Group("/equipment/instances")
	instanceHandler := NewInstanceHandler(deps.InstanceUC, deps.QueryUC)
	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC)
	instances.Get("/", instanceHandler.List)
	instances.Post("/", writer, instanceHandler.Create)
	instances.Get("/:id", instanceHandler.GetByID)
	instances.Put("/:id", writer, instanceHandler.Update)
	instances.Delete("/:id", writer, instanceHandler.Delete)
	instances.Get("/:id/related", instanceHandler.Related)
	instances.Get("/:id/assignments", instanceHandler.Assignments)
	instances.Get("/:id/maintenance", instanceHandler.Maintenance)
	instances.Post("/:id/assign", writer, assignmentHandler.Assign)
	instances.Delete("/:id/assignment", writer, assignmentHandler.Remove)

	protected.Post("/equipment/assignments/bulk", writer, assignmentHandler.Bulk)
}
