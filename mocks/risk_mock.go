package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/promptgauge/promptgauge/pkg/app/risk"
	"github.com/promptgauge/promptgauge/pkg/domain/assessment"
)

type MockAssessor struct {
	mock.Mock
}

func (m *MockAssessor) Assess(ctx context.Context, in risk.AssessmentInput) (*assessment.RiskAssessment, error) {
	args := m.Called(ctx, in)
	result, _ := args.Get(0).(*assessment.RiskAssessment)
	return result, args.Error(1)
}

type MockBlender struct {
	mock.Mock
}

func (m *MockBlender) AssessWithClassifier(ctx context.Context, in risk.AssessmentInput) (*assessment.RiskAssessment, error) {
	args := m.Called(ctx, in)
	result, _ := args.Get(0).(*assessment.RiskAssessment)
	return result, args.Error(1)
}

type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, prompt string) (*assessment.TextModerationResult, error) {
	args := m.Called(ctx, prompt)
	verdict, _ := args.Get(0).(*assessment.TextModerationResult)
	return verdict, args.Error(1)
}
