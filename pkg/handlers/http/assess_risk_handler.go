package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/promptgauge/promptgauge/pkg/app/risk"
	"github.com/promptgauge/promptgauge/pkg/domain/assessment"
	domainErrors "github.com/promptgauge/promptgauge/pkg/domain/errors"
	"github.com/promptgauge/promptgauge/pkg/domain/moderation"
	"github.com/promptgauge/promptgauge/pkg/handlers/http/request"
)

type assessRiskHandler struct {
	logger   *logrus.Logger
	assessor risk.Assessor
	blender  risk.Blender
}

func NewAssessRiskHandler(logger *logrus.Logger, assessor risk.Assessor, blender risk.Blender) Handler {
	return &assessRiskHandler{
		logger:   logger,
		assessor: assessor,
		blender:  blender,
	}
}

// Handle @Summary Assess moderation risk for a prompt
// @Description Scores the prompt against history, optionally blended with the external classifier
// @Tags Assessments
// @Accept json
// @Produce json
// @Success 200 {object} assessment.RiskAssessment "Risk assessment"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 422 {object} map[string]interface{} "History contains invalid events"
// @Router /api/v1/assessments [post]
func (h *assessRiskHandler) Handle(c *fiber.Ctx) error {
	var req request.AssessRiskRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind assess risk request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	in := risk.AssessmentInput{
		Prompt:        req.Prompt,
		Type:          moderation.ContentType(req.Type),
		EstimatedCost: req.EstimatedCost,
	}

	var (
		result *assessment.RiskAssessment
		err    error
	)
	if req.UseClassifier && h.blender != nil {
		result, err = h.blender.AssessWithClassifier(c.Context(), in)
	} else {
		result, err = h.assessor.Assess(c.Context(), in)
	}
	if err != nil {
		if domainErrors.IsInvalidEvent(err) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("failed to assess moderation risk")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
