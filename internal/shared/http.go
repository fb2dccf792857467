package shared

import (
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

// UserAgent is sent on every upstream request. The identity provider rejects unknown clients.
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36"

// Transport is an [http.RoundTripper] that sets the browser user agent and paces requests through a token bucket.
type Transport struct {
	Base    http.RoundTripper
	Limiter *rate.Limiter
}

// RoundTrip waits for the limiter, then delegates to Base with the user agent set.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}
	return base.RoundTrip(req)
}

// NewHTTPClient returns a client shared by every upstream call.
//
// rps <= 0 disables pacing.
func NewHTTPClient(rps float64) *http.Client {
	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return &http.Client{
		Transport: &Transport{Base: http.DefaultTransport, Limiter: limiter},
	}
}

// Do sends req and returns the full body of a 2xx response.
//
// Failures wrap one of:
//   - [ErrTransport]: the request never completed
//   - [ErrUnsuccessfulStatus]: non-2xx
//   - [ErrResponseParse]: the body could not be read
func Do(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, req.Method, req.URL.Host, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %v", ErrResponseParse, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, fmt.Errorf("%w: %s %s returned status %d", ErrUnsuccessfulStatus, req.Method, req.URL.Path, resp.StatusCode)
	}
	return body, nil
}
