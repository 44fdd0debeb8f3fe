package http

import (
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/promptgauge/promptgauge/pkg/domain/moderation"
	"github.com/promptgauge/promptgauge/pkg/handlers/http/request"
	"github.com/promptgauge/promptgauge/pkg/infra/imagehash"
)

type createEventHandler struct {
	logger    *logrus.Logger
	repo      moderation.Repository
	maxEvents int
}

func NewCreateEventHandler(logger *logrus.Logger, repo moderation.Repository, maxEvents int) Handler {
	return &createEventHandler{
		logger:    logger,
		repo:      repo,
		maxEvents: maxEvents,
	}
}

// Handle @Summary Record a moderation event
// @Description Appends one generation attempt and its moderation outcome to the history
// @Tags Events
// @Accept json
// @Produce json
// @Success 201 {object} moderation.Event "Recorded event"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/v1/events [post]
func (h *createEventHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind create event request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	event := moderation.Event{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Type:      moderation.ContentType(req.Type),
		Prompt:    req.Prompt,
		Moderated: req.Moderated,
		Cost:      req.Cost,
		Error:     req.Error,
		Model:     req.Model,
		Metadata:  req.Metadata,
	}

	if req.InputImageBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(req.InputImageBase64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "input_image_base64 is not valid base64"})
		}
		event.InputImageHash = imagehash.Sum(data)
	}

	if err := h.repo.Save(c.Context(), &event); err != nil {
		h.logger.WithError(err).Error("failed to save moderation event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.repo.TrimToCap(c.Context(), h.maxEvents); err != nil {
		h.logger.WithError(err).Warn("failed to trim moderation history")
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}
