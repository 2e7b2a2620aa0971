package venues

import (
	"venue-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for venue lookups.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the venue lookup routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/venues")
	group.Get("/:namespace", h.HandleGetTable)
	// resolve must be registered before the acronym wildcard.
	group.Get("/:namespace/resolve", h.HandleResolve)
	group.Get("/:namespace/:acronym", h.HandleGetRecord)
}

// HandleGetTable returns the merged default + user table for a namespace.
func (h *Handler) HandleGetTable(c *fiber.Ctx) error {
	kind, ok := KindFromNamespace(c.Params("namespace"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown namespace",
		})
	}

	l := logger.WithRayID(h.service.logger, c)
	t, err := h.service.Table(kind)
	if err != nil {
		l.Error("Table lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(t)
}

// HandleGetRecord returns the record registered under one acronym.
func (h *Handler) HandleGetRecord(c *fiber.Ctx) error {
	kind, ok := KindFromNamespace(c.Params("namespace"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown namespace",
		})
	}

	l := logger.WithRayID(h.service.logger, c)
	t, err := h.service.Table(kind)
	if err != nil {
		l.Error("Record lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	acronym := c.Params("acronym")
	rec, found := t.Get(acronym)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown acronym",
		})
	}
	return c.JSON(rec)
}

// HandleResolve reverse-looks-up the acronym for a cited venue name.
func (h *Handler) HandleResolve(c *fiber.Ctx) error {
	kind, ok := KindFromNamespace(c.Params("namespace"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown namespace",
		})
	}

	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing name query parameter",
		})
	}

	l := logger.WithRayID(h.service.logger, c)
	acronym, found, err := h.service.Resolve(kind, name)
	if err != nil {
		l.Error("Resolve failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no acronym registered for name",
		})
	}
	return c.JSON(fiber.Map{"acronym": acronym})
}
