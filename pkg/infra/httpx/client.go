package httpx

import (
	"net/http"
	"time"
)

const DefaultTimeout = 30 * time.Second

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=http_client_mock.go --case=underscore --with-expecter
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient returns a plain net/http client. Timeout policy lives here, at
// the transport, not in the callers.
func NewClient(timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
