package integrations

import (
	"errors"
	"net/http"
	"time"

	"github.com/matzehuels/landscaper/pkg/observability"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when the requested resource doesn't exist upstream.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-2xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for upstream requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// HookTransport wraps base so every round trip reports to the observability
// HTTP hooks. It is used for SDK-based clients that do not go through
// [Client]. A nil base means http.DefaultTransport.
func HookTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return hookTransport{base: base}
}

type hookTransport struct {
	base http.RoundTripper
}

func (t hookTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	host, path := hostPath(req.URL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}
