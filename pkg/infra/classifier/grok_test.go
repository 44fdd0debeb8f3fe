package classifier_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/promptgauge/promptgauge/pkg/infra/classifier"
	"github.com/promptgauge/promptgauge/pkg/infra/httpx/mocks"
)

func completionResponse(t *testing.T, content string) *http.Response {
	t.Helper()
	body := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}},
		},
	}
	data, err := json.Marshal(body)
	assert.NoError(t, err)
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(data)),
	}
}

func newClassifier(client *mocks.MockHTTPClient) *classifier.GrokClassifier {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return classifier.NewGrokClassifier(classifier.Config{APIKey: "test-key"}, client, nil, logger)
}

func TestGrokClassifier_Classify_Unsafe(t *testing.T) {
	client := new(mocks.MockHTTPClient)
	client.On("Do", mock.Anything).Return(completionResponse(t,
		`{"safe": false, "confidence": 0.9, "issues": ["graphic violence"], "suggestions": ["soften the scene"], "reasoning": "explicit gore"}`,
	), nil).Once()

	verdict, err := newClassifier(client).Classify(context.Background(), "a very violent scene")

	assert.NoError(t, err)
	assert.False(t, verdict.Safe)
	assert.Equal(t, 0.9, verdict.Confidence)
	assert.Equal(t, []string{"graphic violence"}, verdict.Issues)
	assert.Equal(t, []string{"soften the scene"}, verdict.Suggestions)
	assert.Equal(t, "explicit gore", verdict.Reasoning)
}

func TestGrokClassifier_Classify_FencedJSON(t *testing.T) {
	client := new(mocks.MockHTTPClient)
	client.On("Do", mock.Anything).Return(completionResponse(t,
		"Here is my verdict:\n```json\n{\"safe\": true, \"confidence\": 0.8, \"issues\": [], \"suggestions\": [], \"reasoning\": \"benign\"}\n```",
	), nil).Once()

	verdict, err := newClassifier(client).Classify(context.Background(), "a calm landscape")

	assert.NoError(t, err)
	assert.True(t, verdict.Safe)
	assert.Equal(t, 0.8, verdict.Confidence)
}

func TestGrokClassifier_Classify_ConfidenceClamped(t *testing.T) {
	client := new(mocks.MockHTTPClient)
	client.On("Do", mock.Anything).Return(completionResponse(t,
		`{"safe": false, "confidence": 1.7, "issues": [], "suggestions": []}`,
	), nil).Once()

	verdict, err := newClassifier(client).Classify(context.Background(), "prompt")

	assert.NoError(t, err)
	assert.Equal(t, 1.0, verdict.Confidence)
}

func TestGrokClassifier_Classify_FallbackOnTransportError(t *testing.T) {
	client := new(mocks.MockHTTPClient)
	client.On("Do", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	verdict, err := newClassifier(client).Classify(context.Background(), "prompt")

	assert.NoError(t, err)
	assert.True(t, verdict.Safe)
	assert.Zero(t, verdict.Confidence)
	assert.Empty(t, verdict.Issues)
	assert.Contains(t, verdict.Reasoning, "classifier unavailable")
}

func TestGrokClassifier_Classify_FallbackOnErrorStatus(t *testing.T) {
	client := new(mocks.MockHTTPClient)
	client.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: http.StatusTooManyRequests,
		Body:       io.NopCloser(bytes.NewReader([]byte(`{"error": "rate limited"}`))),
	}, nil).Once()

	verdict, err := newClassifier(client).Classify(context.Background(), "prompt")

	assert.NoError(t, err)
	assert.Zero(t, verdict.Confidence)
	assert.Contains(t, verdict.Reasoning, "status 429")
}

func TestGrokClassifier_Classify_FallbackOnInvalidVerdict(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no json", "I cannot help with that."},
		{"safe not boolean", `{"safe": "yes", "confidence": 0.5}`},
		{"confidence not numeric", `{"safe": true, "confidence": "high"}`},
		{"issues not a list", `{"safe": true, "confidence": 0.5, "issues": "none"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.MockHTTPClient)
			client.On("Do", mock.Anything).Return(completionResponse(t, tt.content), nil).Once()

			verdict, err := newClassifier(client).Classify(context.Background(), "prompt")

			assert.NoError(t, err)
			assert.True(t, verdict.Safe)
			assert.Zero(t, verdict.Confidence)
			assert.Contains(t, verdict.Reasoning, "classifier unavailable")
		})
	}
}

func TestGrokClassifier_Classify_CachesVerdict(t *testing.T) {
	client := new(mocks.MockHTTPClient)
	client.On("Do", mock.Anything).Return(completionResponse(t,
		`{"safe": false, "confidence": 0.7, "issues": ["nudity"], "suggestions": []}`,
	), nil).Once()

	c := newClassifier(client)

	first, err := c.Classify(context.Background(), "same prompt")
	assert.NoError(t, err)
	second, err := c.Classify(context.Background(), "same prompt")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	client.AssertNumberOfCalls(t, "Do", 1)
}

func TestGrokClassifier_Classify_DoesNotCacheFallback(t *testing.T) {
	client := new(mocks.MockHTTPClient)
	client.On("Do", mock.Anything).Return(nil, errors.New("timeout")).Twice()

	c := newClassifier(client)

	_, err := c.Classify(context.Background(), "prompt")
	assert.NoError(t, err)
	_, err = c.Classify(context.Background(), "prompt")
	assert.NoError(t, err)

	client.AssertNumberOfCalls(t, "Do", 2)
}
