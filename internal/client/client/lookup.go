package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultLookupURL is the published BMIC login endpoint.
const DefaultLookupURL = "https://andrew-tran-impt.github.io/bmic-api/bmic-login.json"

// maxPayloadSize caps how much of a lookup response is read.
const maxPayloadSize = 1 << 20

// LookupID is a remote user id. The endpoint may serve it as a JSON string
// or a number; anything but a string keeps its literal JSON text.
type LookupID string

func (id *LookupID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*id = LookupID(str)
		return nil
	}
	*id = LookupID(b)
	return nil
}

// LookupUser is the user object inside a login payload. Any field may be
// missing; deciding whether it is usable is left to the caller.
type LookupUser struct {
	ID     LookupID `json:"id,omitempty"`
	Email  string   `json:"email"`
	Avatar string   `json:"avatar,omitempty"`
}

// LookupPayload is the body served by the login endpoint.
type LookupPayload struct {
	User  LookupUser `json:"user"`
	Token string     `json:"token"`
}

// HTTPLookupClient fetches the login payload over plain HTTP GET.
type HTTPLookupClient struct {
	url string
	hc  *http.Client
}

// NewHTTPLookupClient builds a client for url. A zero timeout means requests
// are bounded only by the caller's context.
func NewHTTPLookupClient(url string, timeout time.Duration) *HTTPLookupClient {
	if url == "" {
		url = DefaultLookupURL
	}
	return &HTTPLookupClient{url: url, hc: &http.Client{Timeout: timeout}}
}

// URL returns the endpoint the client talks to.
func (c *HTTPLookupClient) URL() string { return c.url }

// Lookup fetches and decodes the login payload. Transport failures and
// bodies that are not JSON wrap ErrUnavailable; non-2xx answers wrap
// ErrRejected. A decoded payload is returned as is, even when it has no
// user or token, and a JSON null body yields a zero payload.
func (c *HTTPLookupClient) Lookup(ctx context.Context) (*LookupPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp); err != nil {
		return nil, err
	}

	var p LookupPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPayloadSize)).Decode(&p); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: decode payload: %v", ErrRejected, err)
		}
		return nil, fmt.Errorf("%w: decode payload: %v", ErrUnavailable, err)
	}

	return &p, nil
}

// Ping reports whether the lookup endpoint is reachable. Any HTTP answer
// below 500 counts as reachable.
func (c *HTTPLookupClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	}
	return nil
}

func mapStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode/100 == 2:
		return nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %w: %s", ErrRejected, ErrUnauthorized, resp.Status)
	default:
		return fmt.Errorf("%w: %s", ErrRejected, resp.Status)
	}
}
