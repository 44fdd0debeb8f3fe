package httpx

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// breakerClient wraps a Client with a circuit breaker so a flapping
// upstream fails fast instead of holding every caller for a full timeout.
type breakerClient struct {
	inner   Client
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerClient(name string, inner Client, openTimeout time.Duration, maxFailures uint32) Client {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	}
	return &breakerClient{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (c *breakerClient) Do(req *http.Request) (*http.Response, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.inner.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("breaker (%s): %w", c.breaker.Name(), err)
	}
	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("breaker (%s): unexpected result type %T", c.breaker.Name(), result)
	}
	return resp, nil
}
