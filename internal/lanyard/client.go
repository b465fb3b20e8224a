package lanyard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// PresenceFetcher defines the interface for fetching a user's presence.
// This interface is implemented by *Client and can be used for testing.
type PresenceFetcher interface {
	FetchPresence(ctx context.Context, id string) (*Envelope, error)
}

// Ensure Client implements PresenceFetcher at compile time.
var _ PresenceFetcher = (*Client)(nil)

// Client talks to the Lanyard REST API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// DefaultBaseURL is the public Lanyard API host.
const DefaultBaseURL = "https://api.lanyard.rest"

// NewClient builds a Client for the given API base URL. An empty base uses
// DefaultBaseURL. Requests carry no timeout; callers cancel through ctx.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{},
	}, nil
}

// FetchPresence issues a single GET /v1/users/{id} and returns the decoded
// envelope as-is. The envelope's Success field is not interpreted here.
func (c *Client) FetchPresence(ctx context.Context, id string) (*Envelope, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("user id required")
	}
	rel := &url.URL{Path: "/v1/users/" + id, RawPath: "/v1/users/" + url.PathEscape(id)}
	var payload Envelope
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return &TransportError{Op: "create request", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "execute request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Op: "api " + rel.Path, StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return &TransportError{Op: "decode response", Err: err}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
