package httpx_test

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/promptgauge/promptgauge/pkg/infra/httpx"
	"github.com/promptgauge/promptgauge/pkg/infra/httpx/mocks"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://example.test", nil)
	assert.NoError(t, err)
	return req
}

func TestBreakerClient_Success(t *testing.T) {
	inner := new(mocks.MockHTTPClient)
	inner.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("ok")),
	}, nil).Once()

	client := httpx.NewBreakerClient("test-breaker", inner, 30*time.Second, 3)

	resp, err := client.Do(newRequest(t))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	inner.AssertExpectations(t)
}

func TestBreakerClient_Failure(t *testing.T) {
	inner := new(mocks.MockHTTPClient)
	inner.On("Do", mock.Anything).Return(nil, errors.New("connection refused"))

	client := httpx.NewBreakerClient("failing-breaker", inner, 30*time.Second, 3)

	_, err := client.Do(newRequest(t))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failing-breaker")
}

func TestBreakerClient_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := new(mocks.MockHTTPClient)
	inner.On("Do", mock.Anything).Return(nil, errors.New("connection refused"))

	client := httpx.NewBreakerClient("tripping-breaker", inner, time.Minute, 2)

	for i := 0; i < 2; i++ {
		_, err := client.Do(newRequest(t))
		assert.Error(t, err)
	}

	// Breaker is open now: the inner client must not be called again.
	_, err := client.Do(newRequest(t))
	assert.Error(t, err)
	inner.AssertNumberOfCalls(t, "Do", 2)
}
