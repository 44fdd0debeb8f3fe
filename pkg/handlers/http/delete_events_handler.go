package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/promptgauge/promptgauge/pkg/domain/moderation"
)

type deleteEventsHandler struct {
	logger *logrus.Logger
	repo   moderation.Repository
}

func NewDeleteEventsHandler(logger *logrus.Logger, repo moderation.Repository) Handler {
	return &deleteEventsHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary Clear moderation history
// @Description Deletes every recorded moderation event
// @Tags Events
// @Success 204 "History cleared"
// @Router /api/v1/events [delete]
func (h *deleteEventsHandler) Handle(c *fiber.Ctx) error {
	if err := h.repo.DeleteAll(c.Context()); err != nil {
		h.logger.WithError(err).Error("failed to clear moderation history")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
