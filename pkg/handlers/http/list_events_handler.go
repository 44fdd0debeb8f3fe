package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/promptgauge/promptgauge/pkg/domain/moderation"
)

type listEventsHandler struct {
	logger *logrus.Logger
	repo   moderation.Repository
}

func NewListEventsHandler(logger *logrus.Logger, repo moderation.Repository) Handler {
	return &listEventsHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary List moderation events
// @Description Returns the recorded history, optionally filtered by content type
// @Tags Events
// @Produce json
// @Param type query string false "Content type filter (image|video)"
// @Success 200 {array} moderation.Event "Events, newest first"
// @Router /api/v1/events [get]
func (h *listEventsHandler) Handle(c *fiber.Ctx) error {
	contentType := c.Query("type")

	var (
		events []moderation.Event
		err    error
	)
	if contentType != "" {
		if !moderation.ContentType(contentType).Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid type filter"})
		}
		events, err = h.repo.FindByType(c.Context(), moderation.ContentType(contentType))
	} else {
		events, err = h.repo.FindAll(c.Context())
	}
	if err != nil {
		h.logger.WithError(err).Error("failed to list moderation events")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if events == nil {
		events = []moderation.Event{}
	}
	return c.Status(fiber.StatusOK).JSON(events)
}
