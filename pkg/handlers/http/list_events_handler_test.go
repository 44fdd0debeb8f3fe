package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/promptgauge/promptgauge/mocks"
	"github.com/promptgauge/promptgauge/pkg/domain/moderation"
)

func newListEventsApp(repo *mocks.MockModerationRepository) *fiber.App {
	handler := NewListEventsHandler(logrus.New(), repo)
	app := fiber.New()
	app.Get("/api/v1/events", handler.Handle)
	return app
}

func TestListEventsHandler_All(t *testing.T) {
	repo := new(mocks.MockModerationRepository)
	repo.On("FindAll", mock.Anything).Return([]moderation.Event{
		{ID: "a", Type: moderation.ContentTypeImage, Prompt: "first"},
		{ID: "b", Type: moderation.ContentTypeVideo, Prompt: "second"},
	}, nil)

	app := newListEventsApp(repo)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/events", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var events []moderation.Event
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
	assert.Len(t, events, 2)
	repo.AssertNotCalled(t, "FindByType", mock.Anything, mock.Anything)
}

func TestListEventsHandler_FilteredByType(t *testing.T) {
	repo := new(mocks.MockModerationRepository)
	repo.On("FindByType", mock.Anything, moderation.ContentTypeVideo).Return([]moderation.Event{
		{ID: "b", Type: moderation.ContentTypeVideo, Prompt: "second"},
	}, nil)

	app := newListEventsApp(repo)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/events?type=video", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var events []moderation.Event
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
	require.Len(t, events, 1)
	assert.Equal(t, moderation.ContentTypeVideo, events[0].Type)
}

func TestListEventsHandler_InvalidFilter(t *testing.T) {
	repo := new(mocks.MockModerationRepository)
	app := newListEventsApp(repo)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/events?type=audio", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestListEventsHandler_EmptyHistoryIsAnEmptyList(t *testing.T) {
	repo := new(mocks.MockModerationRepository)
	repo.On("FindAll", mock.Anything).Return(nil, nil)

	app := newListEventsApp(repo)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/events", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var events []moderation.Event
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestListEventsHandler_RepositoryFailure(t *testing.T) {
	repo := new(mocks.MockModerationRepository)
	repo.On("FindAll", mock.Anything).Return(nil, assert.AnError)

	app := newListEventsApp(repo)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/events", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}
