package risk

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/promptgauge/promptgauge/pkg/domain/assessment"
	domainErrors "github.com/promptgauge/promptgauge/pkg/domain/errors"
	"github.com/promptgauge/promptgauge/pkg/domain/moderation"
)

const (
	DefaultModerationSurcharge = 0.05

	riskyTermBoost           = 0.1
	riskyTermConfidenceFloor = 0.5
	confidenceSampleSize     = 10
)

type AssessmentInput struct {
	Prompt        string
	Type          moderation.ContentType
	EstimatedCost float64
}

type Config struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	ModerationSurcharge float64 `mapstructure:"moderation_surcharge"`
}

//go:generate mockery --name=Assessor --dir=. --output=./mocks --filename=assessor_mock.go --case=underscore --with-expecter
type Assessor interface {
	Assess(ctx context.Context, in AssessmentInput) (*assessment.RiskAssessment, error)
}

type assessor struct {
	repo      moderation.Repository
	matcher   *Matcher
	extractor *TermExtractor
	builder   *SuggestionBuilder
	surcharge float64
	logger    *logrus.Logger
}

func NewAssessor(repo moderation.Repository, cfg Config, logger *logrus.Logger) Assessor {
	surcharge := cfg.ModerationSurcharge
	if surcharge <= 0 {
		surcharge = DefaultModerationSurcharge
	}
	return &assessor{
		repo:      repo,
		matcher:   NewMatcher(cfg.SimilarityThreshold),
		extractor: NewTermExtractor(),
		builder:   NewSuggestionBuilder(),
		surcharge: surcharge,
		logger:    logger,
	}
}

// Assess scores the prompt against history alone. Missing data is not an
// error; it surfaces as zero confidence.
func (a *assessor) Assess(ctx context.Context, in AssessmentInput) (*assessment.RiskAssessment, error) {
	history, err := a.repo.FindByType(ctx, in.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to load moderation history: %w", err)
	}
	if err := validateHistory(history); err != nil {
		return nil, err
	}

	moderated, successful := a.matcher.FindSimilar(in.Prompt, in.Type, history)

	var riskScore, confidence float64
	if len(moderated)+len(successful) > 0 {
		moderatedWeight := similaritySum(moderated)
		totalWeight := moderatedWeight + similaritySum(successful)
		if totalWeight > 0 {
			riskScore = moderatedWeight / totalWeight
		}
		confidence = math.Min(float64(len(moderated)+len(successful))/confidenceSampleSize, 1)
	}

	riskyWords := a.extractor.Extract(in.Prompt, history)
	if len(riskyWords) > 0 {
		riskScore = math.Min(riskScore+riskyTermBoost*float64(len(riskyWords)), 1)
		confidence = math.Max(confidence, riskyTermConfidenceFloor)
	}

	a.logger.WithFields(logrus.Fields{
		"type":               in.Type,
		"history_size":       len(history),
		"similar_moderated":  len(moderated),
		"similar_successful": len(successful),
		"risky_words":        len(riskyWords),
		"risk_score":         riskScore,
	}).Debug("historical risk computed")

	return &assessment.RiskAssessment{
		RiskScore:         riskScore,
		Confidence:        confidence,
		SimilarModerated:  moderated,
		SimilarSuccessful: successful,
		RiskyWords:        riskyWords,
		Suggestions:       a.builder.Build(riskyWords, successful),
		EstimatedWaste:    riskScore * (in.EstimatedCost + a.surcharge),
	}, nil
}

// validateHistory rejects history the engine cannot safely score around:
// a moderated attempt is billed, so its recorded cost must be positive.
func validateHistory(history []moderation.Event) error {
	for _, event := range history {
		if event.Moderated && event.Cost <= 0 {
			return domainErrors.NewInvalidEventError(event.ID, "moderated event must have a positive cost")
		}
	}
	return nil
}

func similaritySum(prompts []assessment.SimilarPrompt) float64 {
	var sum float64
	for _, p := range prompts {
		sum += p.Similarity
	}
	return sum
}
