package machines

import (
	"parts-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for machines.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the machines routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/machines")
	group.Get("/", h.HandleListMachines)
}

// HandleListMachines returns every machine.
// @Summary List Machines
// @Description List all machines, ordered by model and variant.
// @Tags machines
// @Produce json
// @Success 200 {array} models.Machine "Machines"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /machines [get]
func (h *Handler) HandleListMachines(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	machines, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Machine listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(machines)
}
