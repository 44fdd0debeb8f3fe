package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/promptgauge/promptgauge/pkg/domain/moderation"
)

type MockModerationRepository struct {
	mock.Mock
}

func (m *MockModerationRepository) Save(ctx context.Context, event *moderation.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockModerationRepository) FindByType(ctx context.Context, contentType moderation.ContentType) ([]moderation.Event, error) {
	args := m.Called(ctx, contentType)
	events, _ := args.Get(0).([]moderation.Event)
	return events, args.Error(1)
}

func (m *MockModerationRepository) FindAll(ctx context.Context) ([]moderation.Event, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).([]moderation.Event)
	return events, args.Error(1)
}

func (m *MockModerationRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockModerationRepository) TrimToCap(ctx context.Context, maxEvents int) error {
	args := m.Called(ctx, maxEvents)
	return args.Error(0)
}
