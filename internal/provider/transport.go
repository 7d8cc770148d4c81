package provider

import (
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker"
)

const maxReadErrorBody = 4 << 10

type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// guardTransport turns non-2xx answers into errors and, with a breaker, counts
// them together with transport failures. GraphQL-level errors arrive as 200 and
// never trip it.
type guardTransport struct {
	base    http.RoundTripper
	breaker *gobreaker.CircuitBreaker
}

func (t *guardTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.breaker == nil {
		return t.roundTrip(req)
	}
	out, err := t.breaker.Execute(func() (interface{}, error) {
		return t.roundTrip(req)
	})
	if err != nil {
		return nil, err
	}
	return out.(*http.Response), nil
}

func (t *guardTransport) roundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxReadErrorBody))
		return nil, &statusError{Code: resp.StatusCode, Body: string(raw)}
	}
	return resp, nil
}
