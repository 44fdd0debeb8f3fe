package risk

import (
	"context"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/promptgauge/promptgauge/pkg/domain/assessment"
)

const (
	maxBlendedSuggestions  = 5
	classifierUnsafeWeight = 0.7
	historicalUnsafeWeight = 0.3
	classifierSafeDiscount = 0.5
	safeConfidenceWeight   = 0.8
)

// Classifier produces a normalized moderation verdict for a prompt. A
// zero-confidence verdict means "no classifier signal", never an error;
// the error return is reserved for unexpected transport-level failures.
//
//go:generate mockery --name=Classifier --dir=. --output=./mocks --filename=classifier_mock.go --case=underscore --with-expecter
type Classifier interface {
	Classify(ctx context.Context, prompt string) (*assessment.TextModerationResult, error)
}

//go:generate mockery --name=Blender --dir=. --output=./mocks --filename=blender_mock.go --case=underscore --with-expecter
type Blender interface {
	AssessWithClassifier(ctx context.Context, in AssessmentInput) (*assessment.RiskAssessment, error)
}

type blender struct {
	assessor   Assessor
	classifier Classifier
	logger     *logrus.Logger
}

func NewBlender(assessor Assessor, classifier Classifier, logger *logrus.Logger) Blender {
	return &blender{
		assessor:   assessor,
		classifier: classifier,
		logger:     logger,
	}
}

// AssessWithClassifier merges the historical assessment with the external
// classifier's verdict. Classifier failures degrade silently to the
// historical result; an assessment is always producible from history alone.
func (b *blender) AssessWithClassifier(ctx context.Context, in AssessmentInput) (*assessment.RiskAssessment, error) {
	base, err := b.assessor.Assess(ctx, in)
	if err != nil {
		return nil, err
	}

	verdict, err := b.classifier.Classify(ctx, in.Prompt)
	if err != nil {
		b.logger.WithError(err).Warn("classifier unavailable, returning historical assessment")
		return base, nil
	}
	if verdict == nil || verdict.Confidence <= 0 {
		return base, nil
	}

	blended := *base
	if !verdict.Safe {
		blended.RiskScore = classifierUnsafeWeight*verdict.Confidence + historicalUnsafeWeight*base.RiskScore
		blended.Confidence = math.Max(verdict.Confidence, base.Confidence)
	} else {
		blended.RiskScore = base.RiskScore * classifierSafeDiscount
		blended.Confidence = math.Max(safeConfidenceWeight*verdict.Confidence, base.Confidence)
	}

	blended.Suggestions = mergeSuggestions(base.Suggestions, verdict.Suggestions)
	blended.RiskyWords = mergeRiskyWords(base.RiskyWords, verdict.Issues)
	// The moderation surcharge is folded in only on the historical-only
	// path; the blended estimate uses the raw cost.
	blended.EstimatedWaste = blended.RiskScore * in.EstimatedCost
	blended.GrokAnalysis = verdict

	return &blended, nil
}

func mergeSuggestions(base, classifier []string) []string {
	merged := make([]string, 0, len(base)+len(classifier))
	merged = append(merged, base...)
	merged = append(merged, classifier...)
	if len(merged) > maxBlendedSuggestions {
		merged = merged[:maxBlendedSuggestions]
	}
	return merged
}

func mergeRiskyWords(baseWords, issues []string) []string {
	seen := make(map[string]struct{}, len(baseWords)+len(issues))
	merged := make([]string, 0, len(baseWords)+len(issues))
	for _, word := range baseWords {
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		merged = append(merged, word)
	}
	for _, issue := range issues {
		lowered := strings.ToLower(issue)
		if _, ok := seen[lowered]; ok {
			continue
		}
		seen[lowered] = struct{}{}
		merged = append(merged, lowered)
	}
	return merged
}
